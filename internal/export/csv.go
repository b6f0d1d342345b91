// Package export renders a patient's chemo history as a downloadable CSV
// blob: a header line, the course ledger, a blank separator, then the
// assessment ledger.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"admit-planner-server/internal/models"
)

var courseHeader = []string{"Cycle", "Date", "Regimen", "Drug", "Dose_mg", "Dose_factor", "Notes"}

var assessmentHeader = []string{"Cycle", "Date", "Type", "Response", "Summary"}

// ChemoHistoryCSV builds the export blob for one patient.
func ChemoHistoryCSV(patientName string, courses []models.ChemoCourse, assessments []models.ChemoAssessment) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Chemo history for %s\n", patientName)

	if len(courses) == 0 {
		buf.WriteString("No chemo courses recorded\n")
	} else {
		w := csv.NewWriter(&buf)
		if err := w.Write(courseHeader); err != nil {
			return nil, err
		}
		for _, course := range courses {
			dose := ""
			if course.DoseMg != nil {
				dose = strconv.FormatFloat(*course.DoseMg, 'f', 1, 64)
			}
			record := []string{
				strconv.Itoa(course.CycleNo),
				course.GivenDate.Format("2006-01-02"),
				course.RegimenName,
				course.DrugName,
				dose,
				strconv.FormatFloat(course.DoseFactor, 'f', 2, 64),
				course.Notes,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	buf.WriteString("\nAssessments\n")

	if len(assessments) == 0 {
		buf.WriteString("No assessments recorded\n")
	} else {
		w := csv.NewWriter(&buf)
		if err := w.Write(assessmentHeader); err != nil {
			return nil, err
		}
		for _, a := range assessments {
			cycle := ""
			if a.CycleNo != nil {
				cycle = strconv.Itoa(*a.CycleNo)
			}
			record := []string{
				cycle,
				a.AssessDate.Format("2006-01-02"),
				a.AssessType,
				a.Response,
				a.ResultSummary,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
