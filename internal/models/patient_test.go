package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func samplePatient() Patient {
	hospitalID := "7b0c9f4e-0000-0000-0000-000000000001"
	wardID := "7b0c9f4e-0000-0000-0000-000000000002"
	admit := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p := Patient{
		BaseModel:         BaseModel{ID: "7b0c9f4e-0000-0000-0000-0000000000aa"},
		PatientName:       "Somsak P.",
		MRN:               "HN-4177",
		Age:               intPtr(61),
		Sex:               "M",
		HospitalID:        &hospitalID,
		WardID:            &wardID,
		Status:            StatusAdmitted,
		AdmitDate:         &admit,
		Bed:               "12A",
		Diagnosis:         "DLBCL stage III",
		ResponsibleMD:     "Dr. N",
		Priority:          PriorityHigh,
		Precautions:       PrecautionContact,
		Notes:             "tolerated cycle 1 well",
		ChemoRegimen:      "R-CHOP",
		ChemoTotalCycles:  intPtr(6),
		ChemoIntervalDays: intPtr(21),
	}
	p.SetBodyMetrics(70, 170)
	return p
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to PatientStatus
		want     bool
	}{
		{StatusPlanned, StatusAdmitted, true},
		{StatusPlanned, StatusCancelled, true},
		{StatusAdmitted, StatusDischarged, true},
		{StatusPlanned, StatusDischarged, false},
		{StatusAdmitted, StatusCancelled, false},
		{StatusDischarged, StatusAdmitted, false},
		{StatusCancelled, StatusPlanned, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestSetBodyMetrics(t *testing.T) {
	var p Patient
	p.SetBodyMetrics(70, 170)
	require.NotNil(t, p.WeightKg)
	require.NotNil(t, p.HeightCm)
	require.NotNil(t, p.BSA)
	assert.InDelta(t, 1.818, *p.BSA, 0.001)

	// Missing height leaves BSA undefined, not zero.
	p.SetBodyMetrics(70, 0)
	require.NotNil(t, p.WeightKg)
	assert.Nil(t, p.HeightCm)
	assert.Nil(t, p.BSA)
}

func TestAppendDischargeNotePreservesPrefix(t *testing.T) {
	p := samplePatient()
	original := p.Notes
	p.AppendDischargeNote(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "readmit", "afebrile at discharge")

	assert.True(t, len(p.Notes) > len(original))
	assert.Equal(t, original, p.Notes[:len(original)])
	assert.Contains(t, p.Notes, "[Discharged 2025-03-20, plan: readmit]")
	assert.Contains(t, p.Notes, "afebrile at discharge")
}

func TestAppendDischargeNoteEmptyNotes(t *testing.T) {
	var p Patient
	p.AppendDischargeNote(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "outpatient", "")
	assert.Equal(t, "[Discharged 2025-03-20, plan: outpatient]", p.Notes)
}

func TestSpawnReadmissionCopiesPlanFields(t *testing.T) {
	p := samplePatient()
	discharge := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	next := p.SpawnReadmission(discharge)

	assert.Equal(t, StatusPlanned, next.Status)
	assert.Equal(t, p.PatientName, next.PatientName)
	assert.Equal(t, p.MRN, next.MRN)
	assert.Equal(t, p.Age, next.Age)
	assert.Equal(t, p.Sex, next.Sex)
	assert.Equal(t, p.Diagnosis, next.Diagnosis)
	assert.Equal(t, p.ResponsibleMD, next.ResponsibleMD)
	assert.Equal(t, p.Priority, next.Priority)
	assert.Equal(t, p.Precautions, next.Precautions)
	assert.Equal(t, p.WeightKg, next.WeightKg)
	assert.Equal(t, p.HeightCm, next.HeightCm)
	assert.Equal(t, p.BSA, next.BSA)
	assert.Equal(t, p.ChemoRegimen, next.ChemoRegimen)
	assert.Equal(t, p.ChemoTotalCycles, next.ChemoTotalCycles)
	assert.Equal(t, p.ChemoIntervalDays, next.ChemoIntervalDays)
}

func TestSpawnReadmissionClearsEpisodeState(t *testing.T) {
	p := samplePatient()
	next := p.SpawnReadmission(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))

	// A fresh row: no identifier, no location, no episode timestamps.
	assert.Empty(t, next.ID)
	assert.Nil(t, next.HospitalID)
	assert.Nil(t, next.WardID)
	assert.Empty(t, next.Bed)
	assert.Nil(t, next.AdmitDate)
	assert.Nil(t, next.LastRoundedAt)
}

func TestSpawnReadmissionPlannedDate(t *testing.T) {
	p := samplePatient()
	discharge := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	next := p.SpawnReadmission(discharge)
	require.NotNil(t, next.PlannedAdmit)
	assert.Equal(t, discharge.AddDate(0, 0, 21), *next.PlannedAdmit)

	// Without an interval the planned date stays open.
	p.ChemoIntervalDays = nil
	next = p.SpawnReadmission(discharge)
	assert.Nil(t, next.PlannedAdmit)
}
