package pricing

import (
	"errors"
	"fmt"
)

// SupportWindow identifica a janela de suporte L2 contratada
type SupportWindow string

const (
	SupportNone     SupportWindow = ""
	SupportBusiness SupportWindow = "business"
	SupportFullTime SupportWindow = "24/7"
)

// Constantes de política comercial do suporte L2. A janela 24/7 aplica um
// multiplicador fixo sobre a baseline de horário comercial.
const (
	l2BaselineFraction   = 0.10
	fullTimeL2Multiplier = 1.5
)

// Criticality descreve o perfil de criticidade de negócio da solução
type Criticality struct {
	Enabled         bool    `json:"enabled"`
	Level           string  `json:"level,omitempty"`
	ImpactOperative string  `json:"impact_operative,omitempty"`
	ImpactFinancial string  `json:"impact_financial,omitempty"`
	CountriesCount  int     `json:"countries_count,omitempty"`
	MarginFraction  float64 `json:"margin_fraction"`
}

var ErrInvalidMarginFraction = errors.New("fração de margem de risco deve estar entre 0 e 1")

// ValidateCriticality rejeita frações de margem fora de [0,1].
// Valores inválidos são erro de entrada, nunca ajustados silenciosamente.
func ValidateCriticality(crit Criticality) error {
	if crit.MarginFraction < 0 || crit.MarginFraction > 1 {
		return fmt.Errorf("%w (recebido %v)", ErrInvalidMarginFraction, crit.MarginFraction)
	}
	return nil
}

var ErrUnknownSupportWindow = errors.New("janela de suporte desconhecida")

// ValidateSupportWindow aceita apenas as janelas conhecidas
func ValidateSupportWindow(window SupportWindow) error {
	switch window {
	case SupportNone, SupportBusiness, SupportFullTime:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSupportWindow, window)
}

// Surcharge calcula os adicionais de suporte L2 e risco sobre o total bruto.
// O custo de risco só incide quando a criticidade está habilitada. Ambos os
// retornos são não-negativos para entradas válidas.
func Surcharge(crit Criticality, window SupportWindow, grossTotal float64) (l2SupportCost, riskCost float64) {
	if crit.Enabled {
		riskCost = grossTotal * crit.MarginFraction
	}

	switch window {
	case SupportBusiness:
		l2SupportCost = grossTotal * l2BaselineFraction
	case SupportFullTime:
		l2SupportCost = grossTotal * l2BaselineFraction * fullTimeL2Multiplier
	}

	return l2SupportCost, riskCost
}
