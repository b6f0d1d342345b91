package models

import (
	"fmt"
	"strings"
	"time"

	"admit-planner-server/internal/chemo"
)

// PatientStatus is the admission lifecycle state.
type PatientStatus string

const (
	StatusPlanned    PatientStatus = "Planned"
	StatusAdmitted   PatientStatus = "Admitted"
	StatusDischarged PatientStatus = "Discharged"
	StatusCancelled  PatientStatus = "Cancelled"
)

// Priority of a planned admission.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Precaution is the infection precaution class.
type Precaution string

const (
	PrecautionNone     Precaution = "None"
	PrecautionContact  Precaution = "Contact"
	PrecautionDroplet  Precaution = "Droplet"
	PrecautionAirborne Precaution = "Airborne"
)

// ValidTransition reports whether the lifecycle allows moving from one
// status to another. Cancelled is a side exit from Planned only.
func ValidTransition(from, to PatientStatus) bool {
	switch from {
	case StatusPlanned:
		return to == StatusAdmitted || to == StatusCancelled
	case StatusAdmitted:
		return to == StatusDischarged
	default:
		return false
	}
}

// Patient is one admission episode. A readmission is a fresh row spawned
// at discharge, not a reopened one.
type Patient struct {
	BaseModel
	PatientName   string        `gorm:"size:255;not null" json:"patientName"`
	MRN           string        `gorm:"size:100" json:"mrn"`
	Age           *int          `json:"age,omitempty"`
	Sex           string        `gorm:"size:20" json:"sex,omitempty"`
	HospitalID    *string       `gorm:"size:36;index" json:"hospitalId,omitempty"`
	WardID        *string       `gorm:"size:36;index" json:"wardId,omitempty"`
	Status        PatientStatus `gorm:"size:20;default:'Planned'" json:"status"`
	PlannedAdmit  *time.Time    `gorm:"column:planned_admit_date" json:"plannedAdmitDate,omitempty"`
	AdmitDate     *time.Time    `json:"admitDate,omitempty"`
	Bed           string        `gorm:"size:50" json:"bed,omitempty"`
	Diagnosis     string        `gorm:"size:255" json:"diagnosis,omitempty"`
	ResponsibleMD string        `gorm:"size:255" json:"responsibleMd,omitempty"`
	Priority      Priority      `gorm:"size:20;default:'Medium'" json:"priority"`
	Precautions   Precaution    `gorm:"size:20;default:'None'" json:"precautions"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	LastRoundedAt *time.Time    `json:"lastRoundedAt,omitempty"`

	// Body metrics. BSA is stored at save time, never recomputed on read.
	WeightKg *float64 `json:"weightKg,omitempty"`
	HeightCm *float64 `json:"heightCm,omitempty"`
	BSA      *float64 `gorm:"column:bsa" json:"bsa,omitempty"`

	// Chemo plan: the intended regimen, independent of ledger rows.
	ChemoRegimen      string `gorm:"size:100" json:"chemoRegimen,omitempty"`
	ChemoTotalCycles  *int   `json:"chemoTotalCycles,omitempty"`
	ChemoIntervalDays *int   `json:"chemoIntervalDays,omitempty"`

	// Relations (not always preloaded)
	Hospital    *Hospital         `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Ward        *Ward             `gorm:"foreignKey:WardID" json:"ward,omitempty"`
	RoundsLogs  []RoundsLog       `gorm:"foreignKey:PatientID" json:"-"`
	Transfers   []Transfer        `gorm:"foreignKey:PatientID" json:"-"`
	Photos      []PatientPhoto    `gorm:"foreignKey:PatientID" json:"-"`
	Courses     []ChemoCourse     `gorm:"foreignKey:PatientID" json:"-"`
	Assessments []ChemoAssessment `gorm:"foreignKey:PatientID" json:"-"`
}

// SetBodyMetrics stores weight/height and the derived BSA. Zero values
// clear the metric and leave BSA undefined.
func (p *Patient) SetBodyMetrics(weightKg, heightCm float64) {
	p.WeightKg = nil
	p.HeightCm = nil
	if weightKg > 0 {
		p.WeightKg = &weightKg
	}
	if heightCm > 0 {
		p.HeightCm = &heightCm
	}
	p.BSA = chemo.BSA(weightKg, heightCm)
}

// AppendDischargeNote annotates the notes field at discharge, keeping the
// existing notes as a prefix.
func (p *Patient) AppendDischargeNote(dischargeDate time.Time, plan, note string) {
	annotation := fmt.Sprintf("[Discharged %s, plan: %s]", dischargeDate.Format("2006-01-02"), plan)
	if strings.TrimSpace(note) != "" {
		annotation += " " + strings.TrimSpace(note)
	}
	if p.Notes == "" {
		p.Notes = annotation
	} else {
		p.Notes = p.Notes + "\n" + annotation
	}
}

// SpawnReadmission builds the next Planned admission row from a patient
// being discharged: demographics, diagnosis and chemo plan copy over;
// identifiers, hospital/ward/bed and all episode state are cleared. The
// planned admit date is dischargeDate plus the chemo interval when one is
// set, otherwise left open.
func (p *Patient) SpawnReadmission(dischargeDate time.Time) Patient {
	next := Patient{
		PatientName:       p.PatientName,
		MRN:               p.MRN,
		Age:               p.Age,
		Sex:               p.Sex,
		Status:            StatusPlanned,
		Diagnosis:         p.Diagnosis,
		ResponsibleMD:     p.ResponsibleMD,
		Priority:          p.Priority,
		Precautions:       p.Precautions,
		Notes:             p.Notes,
		WeightKg:          p.WeightKg,
		HeightCm:          p.HeightCm,
		BSA:               p.BSA,
		ChemoRegimen:      p.ChemoRegimen,
		ChemoTotalCycles:  p.ChemoTotalCycles,
		ChemoIntervalDays: p.ChemoIntervalDays,
	}
	if p.ChemoIntervalDays != nil && *p.ChemoIntervalDays > 0 {
		d := dischargeDate.AddDate(0, 0, *p.ChemoIntervalDays)
		next.PlannedAdmit = &d
	}
	return next
}
