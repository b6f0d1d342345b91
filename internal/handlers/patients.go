package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientHandler handles patient intake, listing and lifecycle requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// CreatePatientRequest represents the intake form.
type CreatePatientRequest struct {
	PatientName   string               `json:"patientName" binding:"required"`
	MRN           string               `json:"mrn"`
	Age           *int                 `json:"age"`
	Sex           string               `json:"sex"`
	HospitalID    string               `json:"hospitalId" binding:"required,uuid"`
	WardID        string               `json:"wardId" binding:"omitempty,uuid"`
	Status        models.PatientStatus `json:"status" binding:"omitempty,oneof=Planned Admitted Discharged Cancelled"`
	PlannedAdmit  string               `json:"plannedAdmitDate"` // YYYY-MM-DD
	AdmitDate     string               `json:"admitDate"`        // YYYY-MM-DD
	Bed           string               `json:"bed"`
	Diagnosis     string               `json:"diagnosis"`
	ResponsibleMD string               `json:"responsibleMd"`
	Priority      models.Priority      `json:"priority" binding:"omitempty,oneof=Low Medium High Urgent"`
	Precautions   models.Precaution    `json:"precautions" binding:"omitempty,oneof=None Contact Droplet Airborne"`
	Notes         string               `json:"notes"`
}

// CreatePatient handles admission intake.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if strings.TrimSpace(req.PatientName) == "" {
		utils.BadRequest(c, "Patient name must not be empty")
		return
	}

	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", req.HospitalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	var wardID *string
	if req.WardID != "" {
		var ward models.Ward
		if err := h.DB.First(&ward, "id = ? AND hospital_id = ?", req.WardID, req.HospitalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Ward not found in the selected hospital")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
		wardID = &req.WardID
	}

	plannedAdmit, err := utils.ParseDate(req.PlannedAdmit)
	if err != nil {
		utils.BadRequest(c, "Invalid plannedAdmitDate, expected YYYY-MM-DD")
		return
	}
	admitDate, err := utils.ParseDate(req.AdmitDate)
	if err != nil {
		utils.BadRequest(c, "Invalid admitDate, expected YYYY-MM-DD")
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusPlanned
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	precautions := req.Precautions
	if precautions == "" {
		precautions = models.PrecautionNone
	}

	patient := models.Patient{
		PatientName:   strings.TrimSpace(req.PatientName),
		MRN:           strings.TrimSpace(req.MRN),
		Age:           req.Age,
		Sex:           req.Sex,
		HospitalID:    &req.HospitalID,
		WardID:        wardID,
		Status:        status,
		PlannedAdmit:  plannedAdmit,
		AdmitDate:     admitDate,
		Bed:           req.Bed,
		Diagnosis:     req.Diagnosis,
		ResponsibleMD: req.ResponsibleMD,
		Priority:      priority,
		Precautions:   precautions,
		Notes:         req.Notes,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// GetPatients lists patients with the planner filters: hospitalId, wardId,
// status, plannedOnly, dateStart, dateEnd (matched against both planned
// and actual admit dates). Planned rows sort first, then by admit date.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	query := h.DB.Preload("Hospital").Preload("Ward")

	if hospitalID := c.Query("hospitalId"); hospitalID != "" {
		query = query.Where("hospital_id = ?", hospitalID)
	}
	if wardID := c.Query("wardId"); wardID != "" {
		query = query.Where("ward_id = ?", wardID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("plannedOnly") == "true" {
		query = query.Where("status = ?", models.StatusPlanned)
	}
	if dateStart, err := utils.ParseDate(c.Query("dateStart")); err != nil {
		utils.BadRequest(c, "Invalid dateStart, expected YYYY-MM-DD")
		return
	} else if dateStart != nil {
		query = query.Where("(planned_admit_date >= ? OR admit_date >= ?)", *dateStart, *dateStart)
	}
	if dateEnd, err := utils.ParseDate(c.Query("dateEnd")); err != nil {
		utils.BadRequest(c, "Invalid dateEnd, expected YYYY-MM-DD")
		return
	} else if dateEnd != nil {
		end := dateEnd.AddDate(0, 0, 1)
		query = query.Where("(planned_admit_date < ? OR admit_date < ?)", end, end)
	}

	var patients []models.Patient
	err := query.
		Order("CASE WHEN status = 'Planned' THEN 0 ELSE 1 END").
		Order("COALESCE(planned_admit_date, admit_date) ASC").
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID fetches one patient with hospital/ward preloaded.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.Preload("Hospital").Preload("Ward").First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest carries editable demographic/plan fields. Empty
// fields are left unchanged.
type UpdatePatientRequest struct {
	PatientName   string            `json:"patientName"`
	MRN           string            `json:"mrn"`
	Age           *int              `json:"age"`
	Sex           string            `json:"sex"`
	Bed           string            `json:"bed"`
	Diagnosis     string            `json:"diagnosis"`
	ResponsibleMD string            `json:"responsibleMd"`
	Priority      models.Priority   `json:"priority" binding:"omitempty,oneof=Low Medium High Urgent"`
	Precautions   models.Precaution `json:"precautions" binding:"omitempty,oneof=None Contact Droplet Airborne"`
	Notes         *string           `json:"notes"`
	PlannedAdmit  string            `json:"plannedAdmitDate"`
}

// UpdatePatient edits demographics and plan fields of one patient.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if strings.TrimSpace(req.PatientName) != "" {
		patient.PatientName = strings.TrimSpace(req.PatientName)
	}
	if req.MRN != "" {
		patient.MRN = req.MRN
	}
	if req.Age != nil {
		patient.Age = req.Age
	}
	if req.Sex != "" {
		patient.Sex = req.Sex
	}
	if req.Bed != "" {
		patient.Bed = req.Bed
	}
	if req.Diagnosis != "" {
		patient.Diagnosis = req.Diagnosis
	}
	if req.ResponsibleMD != "" {
		patient.ResponsibleMD = req.ResponsibleMD
	}
	if req.Priority != "" {
		patient.Priority = req.Priority
	}
	if req.Precautions != "" {
		patient.Precautions = req.Precautions
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	if req.PlannedAdmit != "" {
		plannedAdmit, err := utils.ParseDate(req.PlannedAdmit)
		if err != nil {
			utils.BadRequest(c, "Invalid plannedAdmitDate, expected YYYY-MM-DD")
			return
		}
		patient.PlannedAdmit = plannedAdmit
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// UpdateStatusRequest represents a lifecycle transition.
type UpdateStatusRequest struct {
	Status    models.PatientStatus `json:"status" binding:"required,oneof=Planned Admitted Discharged Cancelled"`
	AdmitDate string               `json:"admitDate"` // YYYY-MM-DD, used when moving to Admitted
}

// UpdatePatientStatus applies a lifecycle transition. Discharge goes
// through the dedicated discharge endpoint so the readmit spawn rule is
// never bypassed.
func (h *PatientHandler) UpdatePatientStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Status == models.StatusDischarged {
		utils.BadRequest(c, "Use the discharge endpoint to discharge a patient")
		return
	}
	if !models.ValidTransition(patient.Status, req.Status) {
		utils.Conflict(c, "Cannot move patient from "+string(patient.Status)+" to "+string(req.Status))
		return
	}

	patient.Status = req.Status
	if req.Status == models.StatusAdmitted && patient.AdmitDate == nil {
		admitDate, err := utils.ParseDate(req.AdmitDate)
		if err != nil {
			utils.BadRequest(c, "Invalid admitDate, expected YYYY-MM-DD")
			return
		}
		if admitDate == nil {
			now := time.Now()
			admitDate = &now
		}
		patient.AdmitDate = admitDate
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update status: "+err.Error())
		return
	}

	utils.Success(c, "Patient status updated successfully", patient)
}

// DischargeRequest closes one admission episode.
type DischargeRequest struct {
	Plan          string `json:"plan" binding:"required,oneof=readmit outpatient"`
	Note          string `json:"note"`
	DischargeDate string `json:"dischargeDate"` // YYYY-MM-DD, defaults to today
}

// DischargeResponse returns the closed episode and, for a readmit plan,
// the spawned Planned row.
type DischargeResponse struct {
	Patient       models.Patient  `json:"patient"`
	NextAdmission *models.Patient `json:"nextAdmission,omitempty"`
}

// DischargePatient moves an admitted patient to Discharged. A "readmit"
// plan spawns exactly one new Planned row carrying demographics, diagnosis
// and the chemo plan, with hospital/ward/bed cleared and the planned admit
// date advanced by the chemo interval.
func (h *PatientHandler) DischargePatient(c *gin.Context) {
	var req DischargeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if patient.Status != models.StatusAdmitted {
		utils.Conflict(c, "Only admitted patients can be discharged")
		return
	}

	dischargeDate, err := utils.ParseDate(req.DischargeDate)
	if err != nil {
		utils.BadRequest(c, "Invalid dischargeDate, expected YYYY-MM-DD")
		return
	}
	if dischargeDate == nil {
		now := time.Now()
		dischargeDate = &now
	}

	// Spawn before annotating so the next episode's notes stay clean.
	var spawned models.Patient
	if req.Plan == "readmit" {
		spawned = patient.SpawnReadmission(*dischargeDate)
	}

	patient.Status = models.StatusDischarged
	patient.AppendDischargeNote(*dischargeDate, req.Plan, req.Note)

	var next *models.Patient
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&patient).Error; err != nil {
			return err
		}
		if req.Plan == "readmit" {
			if err := tx.Create(&spawned).Error; err != nil {
				return err
			}
			next = &spawned
		}
		return nil
	})
	if txErr != nil {
		utils.InternalServerError(c, "Failed to discharge patient: "+txErr.Error())
		return
	}

	utils.Success(c, "Patient discharged successfully", DischargeResponse{Patient: patient, NextAdmission: next})
}
