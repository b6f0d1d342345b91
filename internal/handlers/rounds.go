package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoundsHandler handles rounds-note requests.
type RoundsHandler struct {
	DB *gorm.DB
}

// NewRoundsHandler creates a new RoundsHandler.
func NewRoundsHandler(db *gorm.DB) *RoundsHandler {
	return &RoundsHandler{DB: db}
}

// CreateRoundsLogRequest represents a new rounds note.
type CreateRoundsLogRequest struct {
	Author string `json:"author"`
	Note   string `json:"note" binding:"required"`
}

// CreateRoundsLog appends a rounds note and stamps the patient's
// LastRoundedAt, which feeds the daily missed-rounds check.
func (h *RoundsHandler) CreateRoundsLog(c *gin.Context) {
	var req CreateRoundsLogRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if strings.TrimSpace(req.Note) == "" {
		utils.BadRequest(c, "Note must not be empty")
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

	log := models.RoundsLog{
		PatientID: patient.ID,
		Author:    strings.TrimSpace(req.Author),
		Note:      strings.TrimSpace(req.Note),
	}

	now := time.Now()
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&log).Error; err != nil {
			return err
		}
		return tx.Model(&patient).Update("last_rounded_at", now).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to save rounds note: "+err.Error())
		return
	}

	utils.Created(c, "Rounds note saved successfully", log)
}

// GetRoundsLogs lists a patient's rounds notes, newest first.
func (h *RoundsHandler) GetRoundsLogs(c *gin.Context) {
	var logs []models.RoundsLog
	if err := h.DB.Where("patient_id = ?", c.Param("id")).Order("created_at DESC").Find(&logs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch rounds notes: "+err.Error())
		return
	}
	utils.Success(c, "Rounds notes fetched successfully", logs)
}
