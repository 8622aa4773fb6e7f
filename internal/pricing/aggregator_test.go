package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]RateEntry{
		{Service: "Data Engineer", Seniority: SeniorityJr, Frequency: FrequencyMonthly, BasePrice: 4128.70, Multiplier: 1.0},
		{Service: "Data Engineer", Seniority: SenioritySr, Frequency: FrequencyMonthly, BasePrice: 7077.78, Multiplier: 1.0},
		{Service: "Data Engineer", Seniority: SeniorityExpert, Frequency: FrequencyMonthly, BasePrice: 7431.67, Multiplier: 1.0},
		{Service: "Operations Analyst", Seniority: SenioritySsr, Frequency: FrequencyMonthly, BasePrice: 3538.89, Multiplier: 1.0},
	})
}

func TestAggregate_StaffingEndToEnd(t *testing.T) {
	// Cenário de referência: 2 Data Engineers Sr, 100% de alocação, sem
	// criticidade nem desconto, por 6 meses.
	input := Input{
		ServiceType: ServiceStaffing,
		Profiles: []ProfileLine{
			{Role: "Data Engineer", Seniority: SenioritySr, Headcount: 2, AllocationPercentage: 100},
		},
		Duration: DurationSpec{Value: 6, Unit: UnitMonths},
	}

	result, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)

	assert.InDelta(t, 14155.56, result.Breakdown.GrossTotal, 0.01)
	assert.InDelta(t, 14155.56, result.Breakdown.FinalTotal, 0.01)
	assert.Equal(t, 0.0, result.Breakdown.L2SupportCost)
	assert.Equal(t, 0.0, result.Breakdown.RiskCost)
	assert.Equal(t, 6.0, result.DurationMonths)
	assert.InDelta(t, 84933.36, result.Projected.FinalTotal, 0.01)

	require.Len(t, result.Lines, 1)
	assert.False(t, result.Lines[0].RateSubstituted)
	assert.InDelta(t, 7077.78, result.Lines[0].MonthlyRate, 0.001)
}

func TestAggregate_Deterministic(t *testing.T) {
	input := Input{
		ServiceType: ServiceStaffing,
		Profiles: []ProfileLine{
			{Role: "Data Engineer", Seniority: SenioritySr, Headcount: 2, AllocationPercentage: 75, Skills: "Spark, Databricks"},
			{Role: "Operations Analyst", Seniority: SenioritySsr, Headcount: 1},
		},
		Criticality:      Criticality{Enabled: true, Level: "High", MarginFraction: 0.15},
		SupportWindow:    SupportFullTime,
		DiscountEnabled:  true,
		DiscountPct:      5,
		RetentionEnabled: true,
		RetentionPct:     3,
		Duration:         DurationSpec{Value: 12, Unit: UnitWeeks},
	}

	first, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)
	second, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_ProjectRolesSortedAndDeterministic(t *testing.T) {
	input := Input{
		ServiceType: ServiceProject,
		Roles: map[string]int{
			"react_dev":     1,
			"data_engineer": 2,
			"data_analyst":  1,
		},
		Duration: DurationSpec{Value: 3, Unit: UnitMonths},
	}

	first, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)
	second, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Linhas em ordem alfabética de role, independente da ordem do mapa
	require.Len(t, first.Lines, 3)
	assert.Equal(t, "data_analyst", first.Lines[0].Role)
	assert.Equal(t, "data_engineer", first.Lines[1].Role)
	assert.Equal(t, "react_dev", first.Lines[2].Role)

	// Nenhum dos slugs existe no catálogo: todos caem na tabela de fallback
	expected := 2500.0 + 2.0*4950.0 + 4500.0
	assert.InDelta(t, expected, first.Breakdown.GrossTotal, 0.001)
	for _, line := range first.Lines {
		assert.True(t, line.RateSubstituted)
	}
}

func TestAggregate_FallbackDoesNotBlockQuote(t *testing.T) {
	input := Input{
		ServiceType: ServiceStaffing,
		Profiles: []ProfileLine{
			{Role: "Data Engineer", Seniority: SenioritySr, Headcount: 1},
			{Role: "Quantum Consultant", Seniority: SeniorityExpert, Headcount: 1},
		},
		Duration: DurationSpec{Value: 1, Unit: UnitMonths},
	}

	result, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)
	assert.False(t, result.Lines[0].RateSubstituted)
	assert.True(t, result.Lines[1].RateSubstituted)
	assert.InDelta(t, 7077.78+DefaultFallbackRate, result.Breakdown.GrossTotal, 0.001)
}

func TestAggregate_SurchargesAndAdjustments(t *testing.T) {
	input := Input{
		ServiceType: ServiceSustain,
		Profiles: []ProfileLine{
			{Role: "Operations Analyst", Seniority: SenioritySsr, Headcount: 2},
		},
		Criticality:      Criticality{Enabled: true, Level: "Critical", MarginFraction: 0.2},
		SupportWindow:    SupportBusiness,
		DiscountEnabled:  true,
		DiscountPct:      10,
		RetentionEnabled: true,
		RetentionPct:     10,
		Duration:         DurationSpec{Value: 1, Unit: UnitMonths},
	}

	result, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)

	gross := 2 * 3538.89
	assert.InDelta(t, gross, result.Breakdown.GrossTotal, 0.001)
	assert.InDelta(t, gross*0.10, result.Breakdown.L2SupportCost, 0.001)
	assert.InDelta(t, gross*0.20, result.Breakdown.RiskCost, 0.001)

	totalWithRisk := gross * 1.30
	assert.InDelta(t, totalWithRisk, result.Breakdown.TotalWithRisk, 0.001)
	assert.InDelta(t, totalWithRisk*0.10, result.Breakdown.DiscountAmount, 0.001)
	// Retenção sobre o valor já descontado
	assert.InDelta(t, totalWithRisk*0.90*0.10, result.Breakdown.RetentionAmount, 0.001)

	expectedFinal := totalWithRisk - totalWithRisk*0.10 - totalWithRisk*0.90*0.10
	assert.InDelta(t, expectedFinal, result.Breakdown.FinalTotal, 0.001)
}

func TestAggregate_ValidationErrors(t *testing.T) {
	valid := Input{
		ServiceType: ServiceStaffing,
		Profiles: []ProfileLine{
			{Role: "Data Engineer", Seniority: SenioritySr, Headcount: 1},
		},
		Duration: DurationSpec{Value: 1, Unit: UnitMonths},
	}

	tests := []struct {
		name    string
		mutate  func(in *Input)
		wantErr error
	}{
		{
			name:    "headcount zero é rejeitado",
			mutate:  func(in *Input) { in.Profiles[0].Headcount = 0 },
			wantErr: ErrZeroHeadcount,
		},
		{
			name:    "alocação acima de 100 é rejeitada",
			mutate:  func(in *Input) { in.Profiles[0].AllocationPercentage = 120 },
			wantErr: ErrInvalidAllocation,
		},
		{
			name:    "fração de margem acima de 1 não é ajustada silenciosamente",
			mutate:  func(in *Input) { in.Criticality = Criticality{Enabled: true, MarginFraction: 1.5} },
			wantErr: ErrInvalidMarginFraction,
		},
		{
			name:    "desconto acima de 100 é rejeitado",
			mutate:  func(in *Input) { in.DiscountEnabled = true; in.DiscountPct = 101 },
			wantErr: ErrInvalidPercentage,
		},
		{
			name:    "duração zero é rejeitada",
			mutate:  func(in *Input) { in.Duration.Value = 0 },
			wantErr: ErrNonPositiveDuration,
		},
		{
			name:    "tipo de serviço desconhecido",
			mutate:  func(in *Input) { in.ServiceType = "Consultoria" },
			wantErr: ErrUnknownServiceType,
		},
		{
			name:    "janela de suporte desconhecida",
			mutate:  func(in *Input) { in.SupportWindow = "weekends" },
			wantErr: ErrUnknownSupportWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			input.Profiles = []ProfileLine{valid.Profiles[0]}
			tt.mutate(&input)

			_, err := Aggregate(testCatalog(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAggregate_FinalTotalClampedAtZero(t *testing.T) {
	input := Input{
		ServiceType: ServiceStaffing,
		Profiles: []ProfileLine{
			{Role: "Data Engineer", Seniority: SenioritySr, Headcount: 1},
		},
		DiscountEnabled:  true,
		DiscountPct:      100,
		RetentionEnabled: true,
		RetentionPct:     100,
		Duration:         DurationSpec{Value: 1, Unit: UnitMonths},
	}

	result, err := Aggregate(testCatalog(), input)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Breakdown.FinalTotal, 0.0)
}
