package snapshot

import (
	"testing"

	"github.com/storeintelligence/quoting-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	catalog := pricing.NewCatalog([]pricing.RateEntry{
		{Service: "Data Engineer", Seniority: pricing.SenioritySr, Frequency: pricing.FrequencyMonthly, BasePrice: 7077.78, Multiplier: 1.0},
	})

	input := pricing.Input{
		ServiceType: pricing.ServiceStaffing,
		Profiles: []pricing.ProfileLine{
			{Role: "Data Engineer", Seniority: pricing.SenioritySr, Skills: "Spark", Headcount: 2, AllocationPercentage: 100},
		},
		RetentionEnabled: true,
		RetentionPct:     5,
		Duration:         pricing.DurationSpec{Value: 6, Unit: pricing.UnitMonths},
	}

	result, err := pricing.Aggregate(catalog, input)
	require.NoError(t, err)

	return Build(input, result)
}

func TestFreezeThaw_RoundTripLossless(t *testing.T) {
	original := buildTestSnapshot(t)

	blob, err := Freeze(original)
	require.NoError(t, err)

	thawed, err := Thaw(blob)
	require.NoError(t, err)

	// Nenhum campo consumido pelos leitores pode se perder no ciclo
	assert.Equal(t, original, thawed)
}

func TestBuild_StaffingDetailsPresent(t *testing.T) {
	snap := buildTestSnapshot(t)

	require.NotNil(t, snap.StaffingDetails)
	require.Len(t, snap.StaffingDetails.Profiles, 1)

	profile := snap.StaffingDetails.Profiles[0]
	assert.Equal(t, "Data Engineer", profile.Role)
	assert.Equal(t, "Sr", profile.Seniority)
	assert.Equal(t, "Spark", profile.Skills)
	assert.Equal(t, 2, profile.Count)
	assert.InDelta(t, 14155.56, profile.Price, 0.01)
}

func TestBuild_ProjectHasNoStaffingDetails(t *testing.T) {
	catalog := pricing.NewCatalog(nil)
	input := pricing.Input{
		ServiceType: pricing.ServiceProject,
		Roles:       map[string]int{"data_engineer": 1},
		Duration:    pricing.DurationSpec{Value: 2, Unit: pricing.UnitMonths},
	}

	result, err := pricing.Aggregate(catalog, input)
	require.NoError(t, err)

	snap := Build(input, result)
	assert.Nil(t, snap.StaffingDetails)
	assert.True(t, snap.HasBreakdown())
}

func TestThaw_LegacyBlobDegradesGracefully(t *testing.T) {
	// Cotação antiga: JSON sem version nem desglose
	legacy := []byte(`{"clientName":"Nestlé","complexity":"Alta","roles":{"data_engineer":2}}`)

	snap, err := Thaw(legacy)
	require.NoError(t, err)

	assert.False(t, snap.HasBreakdown())
	assert.Equal(t, 0, snap.Version)
	assert.Equal(t, 0.0, snap.FinalTotal)
}

func TestThaw_EmptyBlob(t *testing.T) {
	snap, err := Thaw(nil)
	require.NoError(t, err)
	assert.False(t, snap.HasBreakdown())
}

func TestThaw_InvalidJSON(t *testing.T) {
	_, err := Thaw([]byte(`{"version": `))
	assert.Error(t, err)
}

func TestSnapshot_BreakdownReassembled(t *testing.T) {
	snap := buildTestSnapshot(t)

	b := snap.Breakdown()
	assert.Equal(t, snap.GrossTotal, b.GrossTotal)
	assert.Equal(t, snap.RetentionAmount, b.RetentionAmount)
	assert.Equal(t, snap.FinalTotal, b.FinalTotal)
	assert.Equal(t, snap.TotalWithRisk, b.TotalWithRisk)
}
