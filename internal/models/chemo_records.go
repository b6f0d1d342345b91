package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"admit-planner-server/internal/chemo"
)

// RuleList persists a regimen's drug rules as a JSON column.
type RuleList []chemo.DoseRule

// Value implements driver.Valuer.
func (r RuleList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *RuleList) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into RuleList", value)
	}
}

// ChemoTemplate is a named regimen. Seeded at startup and read-only
// reference data thereafter; names are unique.
type ChemoTemplate struct {
	BaseModel
	Name  string   `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Rules RuleList `gorm:"type:text;not null" json:"rules"`
}

// ErrTemplateNotFound signals an unknown regimen name. Callers fall back
// to manual per-drug entry; this is a supported path, not a failure.
var ErrTemplateNotFound = errors.New("chemo template not found")

// ChemoCourse is one ledger row: one drug given in one cycle. Append-only;
// corrections are new rows, never updates.
type ChemoCourse struct {
	BaseModel
	PatientID   string     `gorm:"size:36;index;not null" json:"patientId"`
	CycleNo     int        `gorm:"not null" json:"cycleNo"`
	GivenDate   time.Time  `gorm:"not null" json:"givenDate"`
	RegimenName string     `gorm:"size:100" json:"regimenName"`
	DrugName    string     `gorm:"size:255;not null" json:"drugName"`
	Mode        chemo.Mode `gorm:"size:20" json:"mode"`
	DosePerM2   *float64   `gorm:"column:dose_per_m2" json:"dosePerM2,omitempty"`
	DosePerKg   *float64   `json:"dosePerKg,omitempty"`
	FixedDoseMg *float64   `json:"fixedDoseMg,omitempty"`
	DoseMg      *float64   `json:"doseMg"`
	DoseFactor  float64    `json:"doseFactor"`
	Notes       string     `gorm:"size:255" json:"notes,omitempty"`

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// ChemoAssessment is a response-evaluation record (CT / PET / BM etc.).
type ChemoAssessment struct {
	BaseModel
	PatientID     string    `gorm:"size:36;index;not null" json:"patientId"`
	CycleNo       *int      `json:"cycleNo,omitempty"`
	AssessDate    time.Time `gorm:"not null" json:"assessDate"`
	AssessType    string    `gorm:"size:100" json:"assessType,omitempty"`
	ResultSummary string    `gorm:"type:text" json:"resultSummary,omitempty"`
	Response      string    `gorm:"size:50" json:"response,omitempty"`

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}
