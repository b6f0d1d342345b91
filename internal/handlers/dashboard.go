package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the admissions overview numbers.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// HospitalBreakdown is the per-hospital status count row.
type HospitalBreakdown struct {
	Hospital   string `json:"hospital"`
	Planned    int64  `json:"planned"`
	Admitted   int64  `json:"admitted"`
	Discharged int64  `json:"discharged"`
}

// DashboardResponse is the overview payload.
type DashboardResponse struct {
	TotalPlanned    int64               `json:"totalPlanned"`
	TotalAdmitted   int64               `json:"totalAdmitted"`
	TotalDischarged int64               `json:"totalDischarged"`
	PlannedNext7d   int64               `json:"plannedNext7Days"`
	AdmittedToday   int64               `json:"admittedToday"`
	ByHospital      []HospitalBreakdown `json:"byHospital"`
}

// GetDashboard computes the status totals and per-hospital breakdown.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var resp DashboardResponse

	counts := []struct {
		status models.PatientStatus
		dest   *int64
	}{
		{models.StatusPlanned, &resp.TotalPlanned},
		{models.StatusAdmitted, &resp.TotalAdmitted},
		{models.StatusDischarged, &resp.TotalDischarged},
	}
	for _, count := range counts {
		if err := h.DB.Model(&models.Patient{}).Where("status = ?", count.status).Count(count.dest).Error; err != nil {
			utils.InternalServerError(c, "Failed to compute dashboard: "+err.Error())
			return
		}
	}

	today := time.Now().Truncate(24 * time.Hour)
	weekOut := today.AddDate(0, 0, 7)
	if err := h.DB.Model(&models.Patient{}).
		Where("status = ? AND planned_admit_date >= ? AND planned_admit_date < ?", models.StatusPlanned, today, weekOut.AddDate(0, 0, 1)).
		Count(&resp.PlannedNext7d).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute dashboard: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Patient{}).
		Where("status = ? AND admit_date >= ? AND admit_date < ?", models.StatusAdmitted, today, today.AddDate(0, 0, 1)).
		Count(&resp.AdmittedToday).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute dashboard: "+err.Error())
		return
	}

	var hospitals []models.Hospital
	if err := h.DB.Order("name").Find(&hospitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute dashboard: "+err.Error())
		return
	}
	resp.ByHospital = make([]HospitalBreakdown, 0, len(hospitals))
	for _, hospital := range hospitals {
		row := HospitalBreakdown{Hospital: hospital.Name}
		pairs := []struct {
			status models.PatientStatus
			dest   *int64
		}{
			{models.StatusPlanned, &row.Planned},
			{models.StatusAdmitted, &row.Admitted},
			{models.StatusDischarged, &row.Discharged},
		}
		for _, pair := range pairs {
			if err := h.DB.Model(&models.Patient{}).
				Where("hospital_id = ? AND status = ?", hospital.ID, pair.status).
				Count(pair.dest).Error; err != nil {
				utils.InternalServerError(c, "Failed to compute dashboard: "+err.Error())
				return
			}
		}
		resp.ByHospital = append(resp.ByHospital, row)
	}

	utils.Success(c, "Dashboard computed successfully", resp)
}
