package chemo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeCyclePriorCycleWins(t *testing.T) {
	prior := []CourseDose{
		{CycleNo: 1, Drug: "Doxorubicin", DoseMg: ptr(90.9), DoseFactor: 1.0},
	}

	defaults, _ := ProposeCycle(chopRules(), 70, 170, 1.0, prior, 2)
	byDrug := map[string]CycleDefault{}
	for _, d := range defaults {
		byDrug[d.Drug] = d
	}

	// Doxorubicin was given in cycle 1: its absolute dose carries forward,
	// not a re-derivation from the template.
	dox := byDrug["Doxorubicin"]
	require.NotNil(t, dox.DefaultDoseMg)
	assert.Equal(t, 90.9, *dox.DefaultDoseMg)
	assert.True(t, dox.FromPriorCycle)

	// Drugs without a prior entry fall back to the template dose.
	cyclo := byDrug["Cyclophosphamide"]
	require.NotNil(t, cyclo.DefaultDoseMg)
	assert.InDelta(t, 1363.6, *cyclo.DefaultDoseMg, 0.001)
	assert.False(t, cyclo.FromPriorCycle)
}

func TestProposeCycleOnlyImmediatePriorCounts(t *testing.T) {
	prior := []CourseDose{
		{CycleNo: 1, Drug: "Doxorubicin", DoseMg: ptr(75.0), DoseFactor: 0.8},
	}

	// Proposing cycle 3: cycle 1 is not the immediately preceding cycle.
	defaults, _ := ProposeCycle(chopRules(), 70, 170, 1.0, prior, 3)
	for _, d := range defaults {
		if d.Drug == "Doxorubicin" {
			require.NotNil(t, d.DefaultDoseMg)
			assert.InDelta(t, 90.9, *d.DefaultDoseMg, 0.001)
			assert.False(t, d.FromPriorCycle)
		}
	}
}

func TestProposeCycleFactorSeed(t *testing.T) {
	prior := []CourseDose{
		{CycleNo: 2, Drug: "Doxorubicin", DoseMg: ptr(68.2), DoseFactor: 0.75},
	}

	defaults, _ := ProposeCycle(chopRules(), 70, 170, 1.0, prior, 3)
	for _, d := range defaults {
		switch d.Drug {
		case "Doxorubicin":
			assert.Equal(t, 0.75, d.DefaultFactor)
		default:
			assert.Equal(t, 1.0, d.DefaultFactor)
		}
	}
}

func TestProposeCycleAppliesFactorToTemplateDose(t *testing.T) {
	defaults, _ := ProposeCycle(chopRules(), 70, 170, 0.75, nil, 1)
	byDrug := map[string]CycleDefault{}
	for _, d := range defaults {
		byDrug[d.Drug] = d
	}

	// Factor applies after the cap: Vincristine caps at 2.0, then 75%.
	require.NotNil(t, byDrug["Vincristine"].DefaultDoseMg)
	assert.Equal(t, 1.5, *byDrug["Vincristine"].DefaultDoseMg)
	require.NotNil(t, byDrug["Cyclophosphamide"].DefaultDoseMg)
	assert.InDelta(t, 1022.7, *byDrug["Cyclophosphamide"].DefaultDoseMg, 0.001)
	require.NotNil(t, byDrug["Prednisolone"].DefaultDoseMg)
	assert.Equal(t, 75.0, *byDrug["Prednisolone"].DefaultDoseMg)
}

func TestProposeCycleStrictNameMatching(t *testing.T) {
	prior := []CourseDose{
		{CycleNo: 1, Drug: "doxorubicin", DoseMg: ptr(75.0), DoseFactor: 1.0},
	}

	// Different spelling is a different drug; no carry-forward.
	defaults, _ := ProposeCycle(chopRules(), 70, 170, 1.0, prior, 2)
	for _, d := range defaults {
		if d.Drug == "Doxorubicin" {
			assert.False(t, d.FromPriorCycle)
		}
	}
}

func TestProposeCycleUndefinedStaysUndefined(t *testing.T) {
	// No body metrics: per-BSA doses stay nil, fixed doses still resolve.
	defaults, bsa := ProposeCycle(chopRules(), 0, 0, 1.0, nil, 1)
	assert.Nil(t, bsa)
	for _, d := range defaults {
		if d.Mode == ModeFixed {
			assert.NotNil(t, d.DefaultDoseMg, d.Drug)
		} else {
			assert.Nil(t, d.DefaultDoseMg, d.Drug)
		}
	}
}

func TestNextCycleNumber(t *testing.T) {
	assert.Equal(t, 1, NextCycleNumber(nil))
	assert.Equal(t, 4, NextCycleNumber([]int{1, 2, 3}))
	// Gaps are allowed; the suggestion follows the max, not the count.
	assert.Equal(t, 8, NextCycleNumber([]int{1, 7, 3}))
}

func TestBuildCourseRowsAppliesFactor(t *testing.T) {
	rows, err := BuildCourseRows([]CycleEntry{
		{Drug: "Cyclophosphamide", BaseDoseMg: ptr(1363.6), Factor: 0.75},
		{Drug: "Doxorubicin", BaseDoseMg: ptr(90.9), Factor: 0.75},
		{Drug: "Vincristine", BaseDoseMg: ptr(2.0), Factor: 0.75},
		{Drug: "Prednisolone", BaseDoseMg: ptr(100.0), Factor: 0.75},
	})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	want := map[string]float64{
		"Cyclophosphamide": 1022.7,
		"Doxorubicin":      68.2,
		"Vincristine":      1.5,
		"Prednisolone":     75.0,
	}
	for _, row := range rows {
		assert.InDelta(t, want[row.Drug], row.DoseMg, 0.001, row.Drug)
		assert.Equal(t, 0.75, row.Factor)
	}
}

func TestBuildCourseRowsManualDose(t *testing.T) {
	rows, err := BuildCourseRows([]CycleEntry{
		{Drug: "Rituximab", ManualDoseMg: ptr(680.25), Factor: 0.8},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Manual absolute doses are stored as-is with factor 1.0.
	assert.Equal(t, 680.3, rows[0].DoseMg)
	assert.Equal(t, 1.0, rows[0].Factor)
}

func TestBuildCourseRowsUnresolvedDose(t *testing.T) {
	rows, err := BuildCourseRows([]CycleEntry{
		{Drug: "Cyclophosphamide", BaseDoseMg: ptr(1363.6), Factor: 1.0},
		{Drug: "Doxorubicin", Factor: 1.0},
	})
	require.Error(t, err)
	assert.Nil(t, rows)

	var unresolved *UnresolvedDoseError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Doxorubicin", unresolved.Drug)
}
