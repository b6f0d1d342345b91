package chemo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func chopRules() []DoseRule {
	return []DoseRule{
		{Drug: "Cyclophosphamide", Mode: ModePerBSA, DosePerM2: ptr(750.0)},
		{Drug: "Doxorubicin", Mode: ModePerBSA, DosePerM2: ptr(50.0)},
		{Drug: "Vincristine", Mode: ModePerBSA, DosePerM2: ptr(1.4), MaxMg: ptr(2.0)},
		{Drug: "Prednisolone", Mode: ModeFixed, FixedDoseMg: ptr(100.0)},
	}
}

func TestBSA(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		want     *float64
	}{
		{"typical adult", 70, 170, ptr(math.Sqrt(70 * 170 / 3600.0))},
		{"zero weight", 0, 170, nil},
		{"zero height", 70, 0, nil},
		{"both zero", 0, 0, nil},
		{"negative weight", -1, 170, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BSA(tt.weightKg, tt.heightCm)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestBSAMostellerValue(t *testing.T) {
	bsa := BSA(70, 170)
	require.NotNil(t, bsa)
	assert.InDelta(t, 1.818, *bsa, 0.001)
}

func TestComputeDosesPerBSA(t *testing.T) {
	rules := []DoseRule{{Drug: "Doxorubicin", Mode: ModePerBSA, DosePerM2: ptr(50.0)}}

	doses, bsa := ComputeDoses(rules, 70, 170)
	require.Len(t, doses, 1)
	require.NotNil(t, bsa)
	require.NotNil(t, doses[0].DoseMg)
	assert.InDelta(t, 90.9, *doses[0].DoseMg, 0.001)

	// Undefined when either metric is missing.
	doses, bsa = ComputeDoses(rules, 0, 170)
	assert.Nil(t, bsa)
	assert.Nil(t, doses[0].DoseMg)

	doses, _ = ComputeDoses(rules, 70, 0)
	assert.Nil(t, doses[0].DoseMg)
}

func TestComputeDosesPerKg(t *testing.T) {
	rules := []DoseRule{{Drug: "Daratumumab", Mode: ModePerKg, DosePerKg: ptr(16.0)}}

	doses, _ := ComputeDoses(rules, 70, 170)
	require.NotNil(t, doses[0].DoseMg)
	assert.InDelta(t, 1120.0, *doses[0].DoseMg, 0.001)

	// Per-kg needs weight but not height.
	doses, _ = ComputeDoses(rules, 70, 0)
	require.NotNil(t, doses[0].DoseMg)
	assert.InDelta(t, 1120.0, *doses[0].DoseMg, 0.001)

	doses, _ = ComputeDoses(rules, 0, 170)
	assert.Nil(t, doses[0].DoseMg)
}

func TestComputeDosesFixed(t *testing.T) {
	rules := []DoseRule{{Drug: "Prednisolone", Mode: ModeFixed, FixedDoseMg: ptr(100.0)}}

	for _, metrics := range [][2]float64{{70, 170}, {0, 0}, {0, 170}, {70, 0}} {
		doses, _ := ComputeDoses(rules, metrics[0], metrics[1])
		require.NotNil(t, doses[0].DoseMg, "metrics %v", metrics)
		assert.Equal(t, 100.0, *doses[0].DoseMg)
	}
}

func TestComputeDosesCap(t *testing.T) {
	rules := []DoseRule{{Drug: "Vincristine", Mode: ModePerBSA, DosePerM2: ptr(1.4), MaxMg: ptr(2.0)}}

	// 1.4 × 1.818 = 2.545, clamped to the cap.
	doses, _ := ComputeDoses(rules, 70, 170)
	require.NotNil(t, doses[0].DoseMg)
	assert.Equal(t, 2.0, *doses[0].DoseMg)

	// Below the cap the computed dose stands.
	doses, _ = ComputeDoses(rules, 30, 100)
	require.NotNil(t, doses[0].DoseMg)
	assert.Less(t, *doses[0].DoseMg, 2.0)
}

func TestComputeDosesCHOPScenario(t *testing.T) {
	doses, bsa := ComputeDoses(chopRules(), 70, 170)
	require.Len(t, doses, 4)
	require.NotNil(t, bsa)
	assert.InDelta(t, 1.818, *bsa, 0.001)

	want := map[string]float64{
		"Cyclophosphamide": 1363.6,
		"Doxorubicin":      90.9,
		"Vincristine":      2.0,
		"Prednisolone":     100.0,
	}
	for _, d := range doses {
		require.NotNil(t, d.DoseMg, d.Drug)
		assert.InDelta(t, want[d.Drug], *d.DoseMg, 0.001, d.Drug)
	}
}

func TestComputeDosesKeepsTemplateOrder(t *testing.T) {
	doses, _ := ComputeDoses(chopRules(), 70, 170)
	names := make([]string, len(doses))
	for i, d := range doses {
		names[i] = d.Drug
	}
	assert.Equal(t, []string{"Cyclophosphamide", "Doxorubicin", "Vincristine", "Prednisolone"}, names)
}

func TestComputeDosesIdempotent(t *testing.T) {
	first, bsa1 := ComputeDoses(chopRules(), 70, 170)
	second, bsa2 := ComputeDoses(chopRules(), 70, 170)
	assert.Equal(t, first, second)
	assert.Equal(t, *bsa1, *bsa2)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 90.9, Round1(90.9058))
	assert.Equal(t, 1363.6, Round1(1363.58))
	assert.Equal(t, 2.5, Round1(2.545))
	assert.Equal(t, 0.0, Round1(0.04))
}
