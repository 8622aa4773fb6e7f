package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidPercentage = errors.New("percentual deve estar entre 0 e 100")

// ValidatePercentage valida descontos e retenções informados pelo usuário
func ValidatePercentage(name string, pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%s: %w (recebido %v)", name, ErrInvalidPercentage, pct)
	}
	return nil
}

// Adjust calcula o desconto comercial e a retenção interna sobre o subtotal.
// A retenção incide sempre DEPOIS do desconto: com subtotal 1000, 10% de
// desconto e 10% de retenção, o desconto é 100 e a retenção 90 (10% de 900).
func Adjust(subtotal, discountPct, retentionPct float64) (discountAmount, retentionAmount float64) {
	discountAmount = subtotal * discountPct / 100
	retentionAmount = (subtotal - discountAmount) * retentionPct / 100
	return discountAmount, retentionAmount
}
