package models

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"admit-planner-server/internal/chemo"
)

func f(v float64) *float64 { return &v }

// DefaultTemplates returns the built-in regimen templates (simplified
// protocols). Coefficients are mg/m², mg/kg or flat mg per the rule mode.
func DefaultTemplates() []ChemoTemplate {
	return []ChemoTemplate{
		{Name: "CHOP", Rules: RuleList{
			{Drug: "Cyclophosphamide", Mode: chemo.ModePerBSA, DosePerM2: f(750.0)},
			{Drug: "Doxorubicin", Mode: chemo.ModePerBSA, DosePerM2: f(50.0)},
			{Drug: "Vincristine", Mode: chemo.ModePerBSA, DosePerM2: f(1.4), MaxMg: f(2.0)},
			{Drug: "Prednisolone", Mode: chemo.ModeFixed, FixedDoseMg: f(100.0)},
		}},
		{Name: "R-CHOP", Rules: RuleList{
			{Drug: "Rituximab", Mode: chemo.ModePerKg, DosePerKg: f(375.0)},
			{Drug: "Cyclophosphamide", Mode: chemo.ModePerBSA, DosePerM2: f(750.0)},
			{Drug: "Doxorubicin", Mode: chemo.ModePerBSA, DosePerM2: f(50.0)},
			{Drug: "Vincristine", Mode: chemo.ModePerBSA, DosePerM2: f(1.4), MaxMg: f(2.0)},
			{Drug: "Prednisolone", Mode: chemo.ModeFixed, FixedDoseMg: f(100.0)},
		}},
		{Name: "ICE", Rules: RuleList{
			{Drug: "Ifosfamide", Mode: chemo.ModePerBSA, DosePerM2: f(5000.0)},
			{Drug: "Carboplatin", Mode: chemo.ModePerBSA, DosePerM2: f(400.0)},
			{Drug: "Etoposide", Mode: chemo.ModePerBSA, DosePerM2: f(100.0)},
		}},
		{Name: "BV-AVD", Rules: RuleList{
			{Drug: "Brentuximab vedotin", Mode: chemo.ModePerKg, DosePerKg: f(1.2)},
			{Drug: "Doxorubicin", Mode: chemo.ModePerBSA, DosePerM2: f(25.0)},
			{Drug: "Vinblastine", Mode: chemo.ModePerBSA, DosePerM2: f(6.0)},
			{Drug: "Dacarbazine", Mode: chemo.ModePerBSA, DosePerM2: f(375.0)},
		}},
		{Name: "Pola-R-CHP", Rules: RuleList{
			{Drug: "Polatuzumab vedotin", Mode: chemo.ModePerKg, DosePerKg: f(1.8)},
			{Drug: "Rituximab", Mode: chemo.ModePerKg, DosePerKg: f(375.0)},
			{Drug: "Cyclophosphamide", Mode: chemo.ModePerBSA, DosePerM2: f(750.0)},
			{Drug: "Doxorubicin", Mode: chemo.ModePerBSA, DosePerM2: f(50.0)},
			{Drug: "Prednisolone", Mode: chemo.ModeFixed, FixedDoseMg: f(100.0)},
		}},
		{Name: "DA-EPOCH-R", Rules: RuleList{
			{Drug: "Etoposide", Mode: chemo.ModePerBSA, DosePerM2: f(50.0)},
			{Drug: "Doxorubicin", Mode: chemo.ModePerBSA, DosePerM2: f(10.0)},
			{Drug: "Vincristine", Mode: chemo.ModePerBSA, DosePerM2: f(0.4), MaxMg: f(2.0)},
			{Drug: "Cyclophosphamide", Mode: chemo.ModePerBSA, DosePerM2: f(750.0)},
			{Drug: "Rituximab", Mode: chemo.ModePerKg, DosePerKg: f(375.0)},
		}},
		{Name: "HyperCVAD", Rules: RuleList{
			{Drug: "Cyclophosphamide", Mode: chemo.ModePerBSA, DosePerM2: f(300.0)},
			{Drug: "Vincristine", Mode: chemo.ModePerBSA, DosePerM2: f(1.4), MaxMg: f(2.0)},
			{Drug: "Doxorubicin", Mode: chemo.ModePerBSA, DosePerM2: f(50.0)},
			{Drug: "Dexamethasone", Mode: chemo.ModeFixed, FixedDoseMg: f(40.0)},
		}},
		{Name: "Daratumumab IV", Rules: RuleList{
			{Drug: "Daratumumab", Mode: chemo.ModePerKg, DosePerKg: f(16.0)},
		}},
		{Name: "Daratumumab SC", Rules: RuleList{
			{Drug: "Daratumumab (SC)", Mode: chemo.ModeFixed, FixedDoseMg: f(1800.0)},
		}},
	}
}

// Seed inserts initial hospitals and regimen templates. Each table is only
// seeded when empty, so restores and restarts never duplicate rows.
func Seed(db *gorm.DB, log *zap.Logger) error {
	var hospitalCount int64
	if err := db.Model(&Hospital{}).Count(&hospitalCount).Error; err != nil {
		return err
	}
	if hospitalCount == 0 {
		for _, name := range []string{"Hospital 1", "Hospital 2", "Hospital 3"} {
			if err := db.Create(&Hospital{Name: name}).Error; err != nil {
				return err
			}
		}
		log.Info("seeded default hospitals", zap.Int("count", 3))
	}

	var templateCount int64
	if err := db.Model(&ChemoTemplate{}).Count(&templateCount).Error; err != nil {
		return err
	}
	if templateCount == 0 {
		templates := DefaultTemplates()
		for i := range templates {
			if err := db.Create(&templates[i]).Error; err != nil {
				return err
			}
		}
		log.Info("seeded chemo templates", zap.Int("count", len(templates)))
	}

	return nil
}
