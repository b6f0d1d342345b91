package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HospitalHandler handles hospital master-data requests.
type HospitalHandler struct {
	DB *gorm.DB
}

// NewHospitalHandler creates a new HospitalHandler.
func NewHospitalHandler(db *gorm.DB) *HospitalHandler {
	return &HospitalHandler{DB: db}
}

// CreateHospitalRequest represents the request body for adding a hospital.
type CreateHospitalRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateHospital adds a hospital. Duplicate names are refused.
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req CreateHospitalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Hospital name must not be empty")
		return
	}

	var existing int64
	if err := h.DB.Model(&models.Hospital{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if existing > 0 {
		utils.Conflict(c, "A hospital with this name already exists")
		return
	}

	hospital := models.Hospital{Name: name}
	if err := h.DB.Create(&hospital).Error; err != nil {
		utils.InternalServerError(c, "Failed to create hospital: "+err.Error())
		return
	}

	utils.Created(c, "Hospital created successfully", hospital)
}

// GetHospitals lists all hospitals ordered by name.
func (h *HospitalHandler) GetHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	if err := h.DB.Order("name").Find(&hospitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch hospitals: "+err.Error())
		return
	}
	utils.Success(c, "Hospitals fetched successfully", hospitals)
}

// DeleteHospital removes a hospital and its wards. Refused while any
// patient still references the hospital; the store is left unchanged.
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	hospitalID := c.Param("id")

	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", hospitalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var patientCount int64
	if err := h.DB.Model(&models.Patient{}).Where("hospital_id = ?", hospitalID).Count(&patientCount).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if patientCount > 0 {
		utils.Conflict(c, "Cannot delete hospital: patients are still assigned to it")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hospital_id = ?", hospitalID).Delete(&models.Ward{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Hospital{}, "id = ?", hospitalID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete hospital: "+err.Error())
		return
	}

	utils.Success(c, "Hospital deleted successfully", nil)
}
