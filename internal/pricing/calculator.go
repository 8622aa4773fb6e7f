package pricing

import (
	"errors"
	"fmt"
)

// ProfileLine representa um perfil alocado em uma cotação de Staffing/Sustain
type ProfileLine struct {
	Role                 string    `json:"role"`
	Seniority            Seniority `json:"seniority"`
	Skills               string    `json:"skills"`
	Headcount            int       `json:"headcount"`
	AllocationPercentage float64   `json:"allocation_percentage"`
	StartDate            string    `json:"start_date,omitempty"`
	EndDate              string    `json:"end_date,omitempty"`
}

var (
	ErrZeroHeadcount     = errors.New("headcount deve ser maior ou igual a 1")
	ErrInvalidAllocation = errors.New("percentual de alocação deve estar entre 0 e 100")
	ErrInvalidSeniority  = errors.New("seniority inválido")
)

// ValidateLine valida os campos de uma linha antes do cálculo.
// Headcount zero é rejeitado explicitamente em vez de assumir 1.
func ValidateLine(line ProfileLine) error {
	if line.Headcount < 1 {
		return fmt.Errorf("perfil %q: %w", line.Role, ErrZeroHeadcount)
	}
	if line.AllocationPercentage < 0 || line.AllocationPercentage > 100 {
		return fmt.Errorf("perfil %q: %w", line.Role, ErrInvalidAllocation)
	}
	if line.Seniority != "" && !ValidSeniority(line.Seniority) {
		return fmt.Errorf("perfil %q: %w (%s)", line.Role, ErrInvalidSeniority, line.Seniority)
	}
	return nil
}

// LineCost calcula o custo mensal de uma linha de staffing.
//
//	custo = basePrice * multiplier * (alocação/100) * headcount
//
// Alocação ausente (zero) equivale a 100%. Valores intermediários não são
// arredondados; o arredondamento acontece apenas na exibição, para não
// acumular erro entre linhas.
func LineCost(line ProfileLine, rate RateEntry) float64 {
	allocation := line.AllocationPercentage
	if allocation <= 0 {
		allocation = 100
	}
	return rate.BasePrice * rate.Multiplier * (allocation / 100) * float64(line.Headcount)
}
