package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransferHandler handles ward/hospital moves.
type TransferHandler struct {
	DB *gorm.DB
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(db *gorm.DB) *TransferHandler {
	return &TransferHandler{DB: db}
}

// CreateTransferRequest represents a move to a new hospital/ward.
type CreateTransferRequest struct {
	ToHospitalID string `json:"toHospitalId" binding:"required,uuid"`
	ToWardID     string `json:"toWardId" binding:"omitempty,uuid"`
	Reason       string `json:"reason"`
}

// CreateTransfer records the move in the audit trail and updates the
// patient's current assignment in one transaction.
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest
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

	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", req.ToHospitalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Destination hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	var toWardID *string
	if req.ToWardID != "" {
		var ward models.Ward
		if err := h.DB.First(&ward, "id = ? AND hospital_id = ?", req.ToWardID, req.ToHospitalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Destination ward not found in the destination hospital")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
		toWardID = &req.ToWardID
	}

	transfer := models.Transfer{
		PatientID:      patient.ID,
		FromHospitalID: patient.HospitalID,
		FromWardID:     patient.WardID,
		ToHospitalID:   req.ToHospitalID,
		ToWardID:       toWardID,
		MovedAt:        time.Now(),
		Reason:         req.Reason,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}
		return tx.Model(&patient).Updates(map[string]interface{}{
			"hospital_id": req.ToHospitalID,
			"ward_id":     toWardID,
		}).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to transfer patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient transferred successfully", transfer)
}

// GetTransfers lists a patient's transfer history, newest first.
func (h *TransferHandler) GetTransfers(c *gin.Context) {
	var transfers []models.Transfer
	if err := h.DB.Where("patient_id = ?", c.Param("id")).Order("moved_at DESC").Find(&transfers).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch transfers: "+err.Error())
		return
	}
	utils.Success(c, "Transfers fetched successfully", transfers)
}
