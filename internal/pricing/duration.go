package pricing

import (
	"errors"
	"fmt"
)

// DurationUnit é a unidade de duração informada no formulário
type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitWeeks  DurationUnit = "weeks"
	UnitMonths DurationUnit = "months"
)

// Fatores de normalização para meses
const (
	daysPerMonth  = 30.0
	weeksPerMonth = 4.345
)

// DurationSpec representa a duração do engajamento como informada
type DurationSpec struct {
	Value float64      `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

var (
	ErrNonPositiveDuration = errors.New("duração deve ser maior que zero")
	ErrUnknownDurationUnit = errors.New("unidade de duração desconhecida")
)

// ToMonths normaliza a duração para o escalar canônico em meses que todos
// os totais derivados consomem.
func ToMonths(spec DurationSpec) (float64, error) {
	if spec.Value <= 0 {
		return 0, fmt.Errorf("%w (recebido %v)", ErrNonPositiveDuration, spec.Value)
	}

	switch spec.Unit {
	case UnitDays:
		return spec.Value / daysPerMonth, nil
	case UnitWeeks:
		return spec.Value / weeksPerMonth, nil
	case UnitMonths:
		return spec.Value, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownDurationUnit, spec.Unit)
}

// ProjectTotal projeta um valor mensal para o total do engajamento
func ProjectTotal(monthly, months float64) float64 {
	return monthly * months
}

// ProjectBreakdown projeta cada campo mensal do breakdown de forma
// independente, para que os renderizadores exibam valores mensais e totais
// sem recalcular nada.
func ProjectBreakdown(b Breakdown, months float64) Breakdown {
	return Breakdown{
		GrossTotal:      ProjectTotal(b.GrossTotal, months),
		L2SupportCost:   ProjectTotal(b.L2SupportCost, months),
		RiskCost:        ProjectTotal(b.RiskCost, months),
		DiscountAmount:  ProjectTotal(b.DiscountAmount, months),
		RetentionAmount: ProjectTotal(b.RetentionAmount, months),
		TotalWithRisk:   ProjectTotal(b.TotalWithRisk, months),
		FinalTotal:      ProjectTotal(b.FinalTotal, months),
	}
}
