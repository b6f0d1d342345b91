package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WardHandler handles ward master-data requests.
type WardHandler struct {
	DB *gorm.DB
}

// NewWardHandler creates a new WardHandler.
func NewWardHandler(db *gorm.DB) *WardHandler {
	return &WardHandler{DB: db}
}

// CreateWardRequest represents the request body for adding a ward.
type CreateWardRequest struct {
	HospitalID string `json:"hospitalId" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
}

// CreateWard adds a ward to a hospital. Duplicate (hospital, name) pairs
// are refused.
func (h *WardHandler) CreateWard(c *gin.Context) {
	var req CreateWardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Ward name must not be empty")
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

	var existing int64
	if err := h.DB.Model(&models.Ward{}).Where("hospital_id = ? AND name = ?", req.HospitalID, name).Count(&existing).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if existing > 0 {
		utils.Conflict(c, "This hospital already has a ward with this name")
		return
	}

	ward := models.Ward{HospitalID: req.HospitalID, Name: name}
	if err := h.DB.Create(&ward).Error; err != nil {
		utils.InternalServerError(c, "Failed to create ward: "+err.Error())
		return
	}

	utils.Created(c, "Ward created successfully", ward)
}

// GetWards lists wards, optionally filtered by ?hospitalId=.
func (h *WardHandler) GetWards(c *gin.Context) {
	query := h.DB.Preload("Hospital").Order("name")
	if hospitalID := c.Query("hospitalId"); hospitalID != "" {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	var wards []models.Ward
	if err := query.Find(&wards).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch wards: "+err.Error())
		return
	}
	utils.Success(c, "Wards fetched successfully", wards)
}

// DeleteWard removes a ward. Refused while any patient is assigned to it.
func (h *WardHandler) DeleteWard(c *gin.Context) {
	wardID := c.Param("id")

	var ward models.Ward
	if err := h.DB.First(&ward, "id = ?", wardID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Ward not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var patientCount int64
	if err := h.DB.Model(&models.Patient{}).Where("ward_id = ?", wardID).Count(&patientCount).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if patientCount > 0 {
		utils.Conflict(c, "Cannot delete ward: patients are still assigned to it")
		return
	}

	if err := h.DB.Delete(&models.Ward{}, "id = ?", wardID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete ward: "+err.Error())
		return
	}

	utils.Success(c, "Ward deleted successfully", nil)
}
