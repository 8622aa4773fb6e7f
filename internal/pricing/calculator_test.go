package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCost(t *testing.T) {
	rate := RateEntry{BasePrice: 5000, Multiplier: 1.0}

	tests := []struct {
		name string
		line ProfileLine
		want float64
	}{
		{
			name: "alocação total",
			line: ProfileLine{Headcount: 2, AllocationPercentage: 100},
			want: 10000,
		},
		{
			name: "alocação parcial",
			line: ProfileLine{Headcount: 1, AllocationPercentage: 50},
			want: 2500,
		},
		{
			name: "alocação ausente equivale a 100%",
			line: ProfileLine{Headcount: 3},
			want: 15000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LineCost(tt.line, rate), 1e-9)
		})
	}
}

func TestLineCost_MultiplierApplied(t *testing.T) {
	rate := RateEntry{BasePrice: 4000, Multiplier: 1.25}
	line := ProfileLine{Headcount: 1, AllocationPercentage: 100}

	assert.InDelta(t, 5000, LineCost(line, rate), 1e-9)
}

func TestLineCost_NoIntermediateRounding(t *testing.T) {
	// Três linhas com dízimas: a soma dos custos brutos não pode carregar
	// arredondamento intermediário.
	rate := RateEntry{BasePrice: 3333.335, Multiplier: 1.0}
	line := ProfileLine{Headcount: 1, AllocationPercentage: 33}

	cost := LineCost(line, rate)
	assert.InDelta(t, 3333.335*0.33, cost, 1e-12)
}

func TestValidateLine(t *testing.T) {
	assert.NoError(t, ValidateLine(ProfileLine{Role: "Data Engineer", Seniority: SenioritySr, Headcount: 1}))
	assert.ErrorIs(t, ValidateLine(ProfileLine{Role: "Data Engineer", Headcount: 0}), ErrZeroHeadcount)
	assert.ErrorIs(t, ValidateLine(ProfileLine{Role: "Data Engineer", Headcount: 1, AllocationPercentage: -1}), ErrInvalidAllocation)
	assert.ErrorIs(t, ValidateLine(ProfileLine{Role: "Data Engineer", Headcount: 1, Seniority: "Mid"}), ErrInvalidSeniority)
}

func TestAdjust_DiscountBeforeRetention(t *testing.T) {
	discount, retention := Adjust(1000, 10, 10)

	assert.Equal(t, 100.0, discount)
	// Retenção incide sobre 900, não sobre 1000
	assert.Equal(t, 90.0, retention)
}

func TestAdjust_ZeroPercentages(t *testing.T) {
	discount, retention := Adjust(1000, 0, 0)
	assert.Equal(t, 0.0, discount)
	assert.Equal(t, 0.0, retention)
}

func TestSurcharge(t *testing.T) {
	tests := []struct {
		name     string
		crit     Criticality
		window   SupportWindow
		gross    float64
		wantL2   float64
		wantRisk float64
	}{
		{
			name:   "sem criticidade e sem suporte",
			crit:   Criticality{},
			window: SupportNone,
			gross:  10000,
		},
		{
			name:     "criticidade habilitada",
			crit:     Criticality{Enabled: true, MarginFraction: 0.15},
			window:   SupportNone,
			gross:    10000,
			wantRisk: 1500,
		},
		{
			name:   "criticidade desabilitada ignora a fração",
			crit:   Criticality{Enabled: false, MarginFraction: 0.15},
			window: SupportNone,
			gross:  10000,
		},
		{
			name:   "suporte horário comercial",
			crit:   Criticality{},
			window: SupportBusiness,
			gross:  10000,
			wantL2: 1000,
		},
		{
			name:   "suporte 24/7 aplica multiplicador sobre a baseline",
			crit:   Criticality{},
			window: SupportFullTime,
			gross:  10000,
			wantL2: 1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l2, risk := Surcharge(tt.crit, tt.window, tt.gross)
			assert.InDelta(t, tt.wantL2, l2, 1e-9)
			assert.InDelta(t, tt.wantRisk, risk, 1e-9)
			assert.GreaterOrEqual(t, l2, 0.0)
			assert.GreaterOrEqual(t, risk, 0.0)
		})
	}
}

func TestToMonths(t *testing.T) {
	months, err := ToMonths(DurationSpec{Value: 30, Unit: UnitDays})
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, months, 0.01)

	months, err = ToMonths(DurationSpec{Value: 6, Unit: UnitMonths})
	assert.NoError(t, err)
	assert.Equal(t, 6.0, months)

	months, err = ToMonths(DurationSpec{Value: 4.345, Unit: UnitWeeks})
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, months, 0.001)

	_, err = ToMonths(DurationSpec{Value: 0, Unit: UnitMonths})
	assert.ErrorIs(t, err, ErrNonPositiveDuration)

	_, err = ToMonths(DurationSpec{Value: 1, Unit: "years"})
	assert.ErrorIs(t, err, ErrUnknownDurationUnit)
}

func TestProjectBreakdown(t *testing.T) {
	b := Breakdown{
		GrossTotal:      1000,
		L2SupportCost:   100,
		RiskCost:        200,
		DiscountAmount:  130,
		RetentionAmount: 117,
		TotalWithRisk:   1300,
		FinalTotal:      1053,
	}

	projected := ProjectBreakdown(b, 6)

	assert.Equal(t, 6000.0, projected.GrossTotal)
	assert.Equal(t, 600.0, projected.L2SupportCost)
	assert.Equal(t, 1200.0, projected.RiskCost)
	assert.Equal(t, 780.0, projected.DiscountAmount)
	assert.Equal(t, 702.0, projected.RetentionAmount)
	assert.Equal(t, 7800.0, projected.TotalWithRisk)
	assert.Equal(t, 6318.0, projected.FinalTotal)
}

func TestFallbackRate_ExactSlugMatch(t *testing.T) {
	rate, ok := FallbackRate("Data Engineer")
	assert.True(t, ok)
	assert.Equal(t, 4950.0, rate)

	rate, ok = FallbackRate("data_engineer")
	assert.True(t, ok)
	assert.Equal(t, 4950.0, rate)

	// Sem heurística de substring: um nome próximo mas não idêntico cai no
	// default, nunca na entrada parecida.
	rate, ok = FallbackRate("Senior Data Engineer")
	assert.False(t, ok)
	assert.Equal(t, DefaultFallbackRate, rate)
}

func TestCatalog_ResolveExactMatch(t *testing.T) {
	catalog := testCatalog()

	entry, ok := catalog.Resolve("Data Engineer", SenioritySr)
	assert.True(t, ok)
	assert.Equal(t, 7077.78, entry.BasePrice)

	// Nível inexistente para o perfil é estado válido, não erro
	_, ok = catalog.Resolve("Data Engineer", SenioritySsr)
	assert.False(t, ok)

	_, ok = catalog.Resolve("data engineer", SenioritySr)
	assert.False(t, ok)
}
