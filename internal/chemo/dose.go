// Package chemo implements regimen dose computation and cycle bookkeeping.
// All functions are pure; persistence lives with the callers.
package chemo

import (
	"fmt"
	"math"
)

// Mode is the dosing mode of a single drug rule.
type Mode string

const (
	// ModePerBSA doses in mg per m² of body surface area.
	ModePerBSA Mode = "per_m2"
	// ModePerKg doses in mg per kg of body weight.
	ModePerKg Mode = "per_kg"
	// ModeFixed is a flat mg amount independent of body metrics.
	ModeFixed Mode = "fixed"
)

// DoseRule is one drug line of a regimen template. Exactly one coefficient
// field is meaningful for a given Mode; MaxMg optionally caps the computed
// dose. The JSON field names match the stored template payload format.
type DoseRule struct {
	Drug        string   `json:"drug"`
	Mode        Mode     `json:"mode"`
	DosePerM2   *float64 `json:"dose_per_m2,omitempty"`
	DosePerKg   *float64 `json:"dose_per_kg,omitempty"`
	FixedDoseMg *float64 `json:"fixed_dose_mg,omitempty"`
	MaxMg       *float64 `json:"max_mg,omitempty"`
}

// DoseProposal is a computed dose for one drug. DoseMg is nil when the
// dose is undefined (missing body metrics for the rule's mode); the caller
// must collect a manual value before a course row can be recorded.
type DoseProposal struct {
	Drug        string   `json:"drug"`
	Mode        Mode     `json:"mode"`
	DosePerM2   *float64 `json:"dosePerM2,omitempty"`
	DosePerKg   *float64 `json:"dosePerKg,omitempty"`
	FixedDoseMg *float64 `json:"fixedDoseMg,omitempty"`
	MaxMg       *float64 `json:"maxMg,omitempty"`
	DoseMg      *float64 `json:"doseMg"`
}

// BSA computes body surface area in m² with the Mosteller formula.
// Returns nil when either metric is zero or negative.
func BSA(weightKg, heightCm float64) *float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return nil
	}
	v := math.Sqrt(weightKg * heightCm / 3600.0)
	return &v
}

// ComputeDoses evaluates every rule of a template against the patient's
// body metrics. The result keeps template order. The cap applies to the
// base dose, before any adjustment factor the caller may apply later.
// Doses are rounded to one decimal.
func ComputeDoses(rules []DoseRule, weightKg, heightCm float64) ([]DoseProposal, *float64) {
	bsa := BSA(weightKg, heightCm)

	proposals := make([]DoseProposal, 0, len(rules))
	for _, rule := range rules {
		var dose *float64
		switch rule.Mode {
		case ModePerBSA:
			if bsa != nil && rule.DosePerM2 != nil {
				v := *rule.DosePerM2 * *bsa
				dose = &v
			}
		case ModePerKg:
			if weightKg > 0 && rule.DosePerKg != nil {
				v := *rule.DosePerKg * weightKg
				dose = &v
			}
		case ModeFixed:
			dose = rule.FixedDoseMg
		}

		if dose != nil && rule.MaxMg != nil && *dose > *rule.MaxMg {
			dose = rule.MaxMg
		}
		if dose != nil {
			v := Round1(*dose)
			dose = &v
		}

		proposals = append(proposals, DoseProposal{
			Drug:        rule.Drug,
			Mode:        rule.Mode,
			DosePerM2:   rule.DosePerM2,
			DosePerKg:   rule.DosePerKg,
			FixedDoseMg: rule.FixedDoseMg,
			MaxMg:       rule.MaxMg,
			DoseMg:      dose,
		})
	}
	return proposals, bsa
}

// Round1 rounds a milligram amount to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// UnresolvedDoseError reports a course entry whose dose could not be
// derived from the template and had no manual value supplied.
type UnresolvedDoseError struct {
	Drug string
}

func (e *UnresolvedDoseError) Error() string {
	return fmt.Sprintf("dose for %s is undefined: enter an absolute mg value or drop the drug", e.Drug)
}
