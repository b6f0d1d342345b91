package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PhotoHandler handles patient photo uploads and retrieval.
type PhotoHandler struct {
	DB *gorm.DB
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(db *gorm.DB) *PhotoHandler {
	return &PhotoHandler{DB: db}
}

// UploadPhoto stores an uploaded image as binary data against a patient.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Error retrieving file from form: "+err.Error())
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Error reading file content: "+err.Error())
		return
	}

	photo := models.PatientPhoto{
		PatientID: patient.ID,
		FileName:  header.Filename,
		FileType:  header.Header.Get("Content-Type"),
		Caption:   c.PostForm("caption"),
		FileData:  fileData,
	}

	if err := h.DB.Create(&photo).Error; err != nil {
		utils.InternalServerError(c, "Failed to store photo: "+err.Error())
		return
	}

	// Return metadata only, without the binary payload.
	response := struct {
		ID        string    `json:"id"`
		PatientID string    `json:"patientId"`
		FileName  string    `json:"fileName"`
		FileType  string    `json:"fileType"`
		Caption   string    `json:"caption,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}{
		ID:        photo.ID,
		PatientID: photo.PatientID,
		FileName:  photo.FileName,
		FileType:  photo.FileType,
		Caption:   photo.Caption,
		CreatedAt: photo.CreatedAt,
	}

	utils.Created(c, "Photo uploaded successfully", response)
}

// GetPhotos lists a patient's photo metadata, newest first.
func (h *PhotoHandler) GetPhotos(c *gin.Context) {
	var photos []models.PatientPhoto
	err := h.DB.
		Select("id", "created_at", "updated_at", "patient_id", "file_name", "file_type", "caption").
		Where("patient_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&photos).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch photos: "+err.Error())
		return
	}
	utils.Success(c, "Photos fetched successfully", photos)
}

// GetPhotoData serves one photo's binary content.
func (h *PhotoHandler) GetPhotoData(c *gin.Context) {
	var photo models.PatientPhoto
	if err := h.DB.First(&photo, "id = ?", c.Param("photoId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Photo not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", photo.FileName))
	c.Data(http.StatusOK, photo.FileType, photo.FileData)
}
