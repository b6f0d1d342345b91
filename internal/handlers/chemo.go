package handlers

import (
	"admit-planner-server/internal/chemo"
	"admit-planner-server/internal/export"
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ChemoHandler handles body metrics, chemo plans, dose proposals, cycle
// recording, assessments and the history export.
type ChemoHandler struct {
	DB *gorm.DB
}

// NewChemoHandler creates a new ChemoHandler.
func NewChemoHandler(db *gorm.DB) *ChemoHandler {
	return &ChemoHandler{DB: db}
}

func (h *ChemoHandler) loadPatient(c *gin.Context) (*models.Patient, bool) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &patient, true
}

func (h *ChemoHandler) templateByName(name string) (*models.ChemoTemplate, error) {
	var template models.ChemoTemplate
	if err := h.DB.Where("name = ?", name).First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (h *ChemoHandler) priorDoses(patientID string) ([]chemo.CourseDose, []int, error) {
	var courses []models.ChemoCourse
	if err := h.DB.Where("patient_id = ?", patientID).Order("cycle_no, drug_name").Find(&courses).Error; err != nil {
		return nil, nil, err
	}
	prior := make([]chemo.CourseDose, 0, len(courses))
	cycles := make([]int, 0, len(courses))
	for _, course := range courses {
		prior = append(prior, chemo.CourseDose{
			CycleNo:    course.CycleNo,
			Drug:       course.DrugName,
			DoseMg:     course.DoseMg,
			DoseFactor: course.DoseFactor,
		})
		cycles = append(cycles, course.CycleNo)
	}
	return prior, cycles, nil
}

// BodyMetricsRequest carries weight/height in kg/cm; zero clears a value.
type BodyMetricsRequest struct {
	WeightKg float64 `json:"weightKg" binding:"gte=0,lte=300"`
	HeightCm float64 `json:"heightCm" binding:"gte=0,lte=250"`
}

// UpdateBodyMetrics saves weight/height and the derived BSA. The stored
// BSA only changes here, never on read.
func (h *ChemoHandler) UpdateBodyMetrics(c *gin.Context) {
	var req BodyMetricsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	patient.SetBodyMetrics(req.WeightKg, req.HeightCm)
	if err := h.DB.Save(patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to save body metrics: "+err.Error())
		return
	}

	utils.Success(c, "Body metrics saved successfully", patient)
}

// ChemoPlanRequest sets the intended regimen for a patient.
type ChemoPlanRequest struct {
	RegimenName  string `json:"regimenName" binding:"required"`
	TotalCycles  *int   `json:"totalCycles" binding:"omitempty,gte=0,lte=100"`
	IntervalDays *int   `json:"intervalDays" binding:"omitempty,gte=0,lte=60"`
}

// UpdateChemoPlan records the intended regimen, planned cycle count and
// inter-cycle interval. The plan is independent of ledger rows; a revised
// plan does not touch courses already given under another regimen name.
func (h *ChemoHandler) UpdateChemoPlan(c *gin.Context) {
	var req ChemoPlanRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	patient.ChemoRegimen = strings.TrimSpace(req.RegimenName)
	patient.ChemoTotalCycles = req.TotalCycles
	patient.ChemoIntervalDays = req.IntervalDays
	if err := h.DB.Save(patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to save chemo plan: "+err.Error())
		return
	}

	utils.Success(c, "Chemo plan saved successfully", patient)
}

// DoseProposalResponse is the payload of GetDoseProposals.
type DoseProposalResponse struct {
	TemplateFound bool                 `json:"templateFound"`
	RegimenName   string               `json:"regimenName"`
	CycleNo       int                  `json:"cycleNo"`
	Factor        float64              `json:"factor"`
	BSA           *float64             `json:"bsa"`
	Doses         []chemo.CycleDefault `json:"doses"`
}

// GetDoseProposals computes the proposed dose set for an upcoming cycle.
// Query params: regimen (defaults to the patient's plan), factor (default
// 1.0), cycleNo (defaults to max recorded + 1). An unknown regimen is not
// an error: templateFound is false and the operator enters drugs manually.
func (h *ChemoHandler) GetDoseProposals(c *gin.Context) {
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	regimen := c.Query("regimen")
	if regimen == "" {
		regimen = patient.ChemoRegimen
	}
	if regimen == "" {
		utils.BadRequest(c, "No regimen given and the patient has no chemo plan")
		return
	}

	factor := 1.0
	if v := c.Query("factor"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0.25 || parsed > 1.5 {
			utils.BadRequest(c, "factor must be a number between 0.25 and 1.5")
			return
		}
		factor = parsed
	}

	prior, cycles, err := h.priorDoses(patient.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch chemo history: "+err.Error())
		return
	}

	cycleNo := chemo.NextCycleNumber(cycles)
	if v := c.Query("cycleNo"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			utils.BadRequest(c, "cycleNo must be a positive integer")
			return
		}
		cycleNo = parsed
	}

	response := DoseProposalResponse{
		RegimenName: regimen,
		CycleNo:     cycleNo,
		Factor:      factor,
		Doses:       []chemo.CycleDefault{},
	}

	template, err := h.templateByName(regimen)
	if err != nil {
		if errors.Is(err, models.ErrTemplateNotFound) {
			// Manual per-drug entry fallback for custom regimens.
			response.BSA = patient.BSA
			utils.Success(c, "No template for this regimen, enter drugs manually", response)
			return
		}
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	var weight, height float64
	if patient.WeightKg != nil {
		weight = *patient.WeightKg
	}
	if patient.HeightCm != nil {
		height = *patient.HeightCm
	}

	doses, bsa := chemo.ProposeCycle(template.Rules, weight, height, factor, prior, cycleNo)
	response.TemplateFound = true
	response.BSA = bsa
	response.Doses = doses

	utils.Success(c, "Dose proposals computed successfully", response)
}

// CycleEntryRequest is one drug line of a cycle being recorded. Either
// baseDoseMg (template-derived, scaled by the factor) or manualDoseMg
// (absolute, factor forced to 1.0) must be present.
type CycleEntryRequest struct {
	Drug         string   `json:"drug" binding:"required"`
	BaseDoseMg   *float64 `json:"baseDoseMg" binding:"omitempty,gte=0"`
	ManualDoseMg *float64 `json:"manualDoseMg" binding:"omitempty,gte=0"`
	Factor       *float64 `json:"factor" binding:"omitempty,gte=0.25,lte=1.5"`
	Notes        string   `json:"notes"`
}

// RecordCycleRequest records one cycle's drug set.
type RecordCycleRequest struct {
	CycleNo     int                 `json:"cycleNo" binding:"required,gte=1"`
	GivenDate   string              `json:"givenDate" binding:"required"` // YYYY-MM-DD
	RegimenName string              `json:"regimenName" binding:"required"`
	Factor      float64             `json:"factor" binding:"required,gte=0.25,lte=1.5"`
	Entries     []CycleEntryRequest `json:"entries" binding:"required,min=1"`
}

// RecordCycle appends one ledger row per drug. The ledger is append-only;
// a mis-entered dose is corrected with a new cycle number or a note, never
// by updating rows. Cycle numbers are not forced to be sequential.
func (h *ChemoHandler) RecordCycle(c *gin.Context) {
	var req RecordCycleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	givenDate, err := utils.ParseDate(req.GivenDate)
	if err != nil || givenDate == nil {
		utils.BadRequest(c, "Invalid givenDate, expected YYYY-MM-DD")
		return
	}

	entries := make([]chemo.CycleEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		factor := req.Factor
		if e.Factor != nil {
			factor = *e.Factor
		}
		entries = append(entries, chemo.CycleEntry{
			Drug:         strings.TrimSpace(e.Drug),
			BaseDoseMg:   e.BaseDoseMg,
			Factor:       factor,
			ManualDoseMg: e.ManualDoseMg,
			Notes:        e.Notes,
		})
	}

	rows, err := chemo.BuildCourseRows(entries)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Coefficients come from the template when one exists; manual entries
	// are stored without mode or coefficients.
	ruleByDrug := map[string]chemo.DoseRule{}
	if template, err := h.templateByName(req.RegimenName); err == nil {
		for _, rule := range template.Rules {
			ruleByDrug[rule.Drug] = rule
		}
	} else if !errors.Is(err, models.ErrTemplateNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	courses := make([]models.ChemoCourse, 0, len(rows))
	for _, row := range rows {
		dose := row.DoseMg
		course := models.ChemoCourse{
			PatientID:   patient.ID,
			CycleNo:     req.CycleNo,
			GivenDate:   *givenDate,
			RegimenName: req.RegimenName,
			DrugName:    row.Drug,
			DoseMg:      &dose,
			DoseFactor:  row.Factor,
			Notes:       row.Notes,
		}
		if rule, found := ruleByDrug[row.Drug]; found {
			course.Mode = rule.Mode
			course.DosePerM2 = rule.DosePerM2
			course.DosePerKg = rule.DosePerKg
			course.FixedDoseMg = rule.FixedDoseMg
		}
		courses = append(courses, course)
	}

	if err := h.DB.Create(&courses).Error; err != nil {
		utils.InternalServerError(c, "Failed to record cycle: "+err.Error())
		return
	}

	utils.Created(c, "Cycle recorded successfully", courses)
}

// GetCycles lists the chemo ledger for a patient, ordered by cycle then
// drug name.
func (h *ChemoHandler) GetCycles(c *gin.Context) {
	var courses []models.ChemoCourse
	if err := h.DB.Where("patient_id = ?", c.Param("id")).Order("cycle_no, drug_name").Find(&courses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chemo history: "+err.Error())
		return
	}
	utils.Success(c, "Chemo history fetched successfully", courses)
}

// CreateAssessmentRequest records a response evaluation (CT / PET / BM).
type CreateAssessmentRequest struct {
	CycleNo       *int   `json:"cycleNo" binding:"omitempty,gte=1"`
	AssessDate    string `json:"assessDate" binding:"required"` // YYYY-MM-DD
	AssessType    string `json:"assessType"`
	ResultSummary string `json:"resultSummary"`
	Response      string `json:"response"`
}

// CreateAssessment appends one assessment record.
func (h *ChemoHandler) CreateAssessment(c *gin.Context) {
	var req CreateAssessmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	assessDate, err := utils.ParseDate(req.AssessDate)
	if err != nil || assessDate == nil {
		utils.BadRequest(c, "Invalid assessDate, expected YYYY-MM-DD")
		return
	}

	assessment := models.ChemoAssessment{
		PatientID:     patient.ID,
		CycleNo:       req.CycleNo,
		AssessDate:    *assessDate,
		AssessType:    req.AssessType,
		ResultSummary: req.ResultSummary,
		Response:      req.Response,
	}
	if err := h.DB.Create(&assessment).Error; err != nil {
		utils.InternalServerError(c, "Failed to record assessment: "+err.Error())
		return
	}

	utils.Created(c, "Assessment recorded successfully", assessment)
}

// GetAssessments lists a patient's assessments in date order.
func (h *ChemoHandler) GetAssessments(c *gin.Context) {
	var assessments []models.ChemoAssessment
	if err := h.DB.Where("patient_id = ?", c.Param("id")).Order("assess_date").Find(&assessments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch assessments: "+err.Error())
		return
	}
	utils.Success(c, "Assessments fetched successfully", assessments)
}

// ExportChemoHistory streams the chemo history CSV for download.
func (h *ChemoHandler) ExportChemoHistory(c *gin.Context) {
	patient, ok := h.loadPatient(c)
	if !ok {
		return
	}

	var courses []models.ChemoCourse
	if err := h.DB.Where("patient_id = ?", patient.ID).Order("cycle_no, drug_name").Find(&courses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chemo history: "+err.Error())
		return
	}
	var assessments []models.ChemoAssessment
	if err := h.DB.Where("patient_id = ?", patient.ID).Order("assess_date").Find(&assessments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch assessments: "+err.Error())
		return
	}

	blob, err := export.ChemoHistoryCSV(patient.PatientName, courses, assessments)
	if err != nil {
		utils.InternalServerError(c, "Failed to build export: "+err.Error())
		return
	}

	filename := fmt.Sprintf("chemo_history_%s.csv", strings.ReplaceAll(patient.PatientName, " ", "_"))
	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", blob)
}
