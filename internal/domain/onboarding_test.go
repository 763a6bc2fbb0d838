package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestDraftMergeAccumulatesAcrossScreens(t *testing.T) {
	var d Draft

	d = d.Merge(Draft{IncomeType: strPtr("gig")})
	d = d.Merge(Draft{
		MonthlyRent:       floatPtr(5000),
		MonthlyEMITotal:   floatPtr(0),
		MonthlyFixedOther: floatPtr(200),
	})
	d = d.Merge(Draft{PrimaryGoal: strPtr("emergency")})
	d = d.Merge(Draft{RiskTolerance: strPtr("moderate"), LiteracyLevel: intPtr(2)})

	require.NotNil(t, d.IncomeType)
	assert.Equal(t, "gig", *d.IncomeType)
	require.NotNil(t, d.MonthlyRent)
	assert.Equal(t, 5000.0, *d.MonthlyRent)
	require.NotNil(t, d.MonthlyEMITotal)
	assert.Equal(t, 0.0, *d.MonthlyEMITotal)
	require.NotNil(t, d.MonthlyFixedOther)
	assert.Equal(t, 200.0, *d.MonthlyFixedOther)
	require.NotNil(t, d.PrimaryGoal)
	assert.Equal(t, "emergency", *d.PrimaryGoal)
	require.NotNil(t, d.RiskTolerance)
	assert.Equal(t, "moderate", *d.RiskTolerance)
	require.NotNil(t, d.LiteracyLevel)
	assert.Equal(t, 2, *d.LiteracyLevel)
}

func TestDraftMergeLaterWritesWin(t *testing.T) {
	var d Draft
	d = d.Merge(Draft{IncomeType: strPtr("salaried"), MonthlyRent: floatPtr(1000)})
	d = d.Merge(Draft{IncomeType: strPtr("business")})

	assert.Equal(t, "business", *d.IncomeType)
	// Untouched keys survive a later merge.
	require.NotNil(t, d.MonthlyRent)
	assert.Equal(t, 1000.0, *d.MonthlyRent)
}

func TestFinalizeFillsDocumentedDefaults(t *testing.T) {
	p := Draft{}.Finalize()

	assert.Equal(t, DefaultIncomeType, p.IncomeType)
	assert.Equal(t, DefaultIncomePattern, p.IncomePattern)
	assert.Equal(t, 0.0, p.MonthlyIncomeMin)
	assert.Equal(t, 0.0, p.MonthlyIncomeMax)
	assert.False(t, p.SupportsFamily)
	assert.Equal(t, DefaultAgeGroup, p.AgeGroup)
	assert.Equal(t, DefaultPrimaryGoal, p.PrimaryGoal)
	assert.Equal(t, DefaultRiskTolerance, p.RiskTolerance)
	assert.Equal(t, DefaultLiteracyLevel, p.LiteracyLevel)
}

func TestFinalizeIncomeCeilingFallsBackToFloor(t *testing.T) {
	p := Draft{MonthlyIncomeMin: floatPtr(20000)}.Finalize()

	assert.Equal(t, 20000.0, p.MonthlyIncomeMin)
	assert.Equal(t, 20000.0, p.MonthlyIncomeMax)
}

func TestFinalizeKeepsAnsweredFields(t *testing.T) {
	d := Draft{
		IncomeType:     strPtr("gig"),
		AgeGroup:       strPtr("18-25"),
		SupportsFamily: boolPtrTest(true),
	}
	p := d.Finalize()

	assert.Equal(t, "gig", p.IncomeType)
	assert.Equal(t, "18-25", p.AgeGroup)
	assert.True(t, p.SupportsFamily)
}

func boolPtrTest(b bool) *bool { return &b }
