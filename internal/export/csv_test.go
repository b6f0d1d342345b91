package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admit-planner-server/internal/chemo"
	"admit-planner-server/internal/models"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func TestChemoHistoryCSV(t *testing.T) {
	given := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	courses := []models.ChemoCourse{
		{
			CycleNo:     1,
			GivenDate:   given,
			RegimenName: "CHOP",
			DrugName:    "Cyclophosphamide",
			Mode:        chemo.ModePerBSA,
			DoseMg:      fptr(1363.6),
			DoseFactor:  1.0,
		},
		{
			CycleNo:     1,
			GivenDate:   given,
			RegimenName: "CHOP",
			DrugName:    "Vincristine",
			Mode:        chemo.ModePerBSA,
			DoseMg:      fptr(2.0),
			DoseFactor:  1.0,
			Notes:       "capped",
		},
	}
	assessments := []models.ChemoAssessment{
		{
			CycleNo:       iptr(3),
			AssessDate:    time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			AssessType:    "CT",
			Response:      "PR",
			ResultSummary: "interim, partial response",
		},
	}

	blob, err := ChemoHistoryCSV("Somsak P.", courses, assessments)
	require.NoError(t, err)

	lines := strings.Split(string(blob), "\n")
	assert.Equal(t, "Chemo history for Somsak P.", lines[0])
	assert.Equal(t, "Cycle,Date,Regimen,Drug,Dose_mg,Dose_factor,Notes", lines[1])
	assert.Equal(t, "1,2025-02-14,CHOP,Cyclophosphamide,1363.6,1.00,", lines[2])
	assert.Equal(t, "1,2025-02-14,CHOP,Vincristine,2.0,1.00,capped", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Assessments", lines[5])
	assert.Equal(t, "Cycle,Date,Type,Response,Summary", lines[6])
	assert.Equal(t, `3,2025-04-02,CT,PR,"interim, partial response"`, lines[7])
}

func TestChemoHistoryCSVEmptySections(t *testing.T) {
	blob, err := ChemoHistoryCSV("New Patient", nil, nil)
	require.NoError(t, err)

	text := string(blob)
	assert.Contains(t, text, "Chemo history for New Patient\n")
	assert.Contains(t, text, "No chemo courses recorded\n")
	assert.Contains(t, text, "\nAssessments\n")
	assert.Contains(t, text, "No assessments recorded\n")
}

func TestChemoHistoryCSVBlankDose(t *testing.T) {
	courses := []models.ChemoCourse{
		{
			CycleNo:    2,
			GivenDate:  time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			DrugName:   "Unknown agent",
			DoseFactor: 1.0,
		},
	}
	blob, err := ChemoHistoryCSV("X", courses, nil)
	require.NoError(t, err)

	lines := strings.Split(string(blob), "\n")
	assert.Equal(t, "2,2025-03-07,,Unknown agent,,1.00,", lines[2])
}
