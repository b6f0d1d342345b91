package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BackupHandler exposes the whole store as one snapshot blob: download it
// whole, restore it whole. No incremental or partial restore.
type BackupHandler struct {
	DB *gorm.DB
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(db *gorm.DB) *BackupHandler {
	return &BackupHandler{DB: db}
}

// PhotoBackup carries a patient photo including its binary payload, which
// the API model deliberately never serializes.
type PhotoBackup struct {
	models.PatientPhoto
	FileData []byte `json:"fileData"`
}

// Snapshot is the serialized contents of every table.
type Snapshot struct {
	Hospitals   []models.Hospital        `json:"hospitals"`
	Wards       []models.Ward            `json:"wards"`
	Patients    []models.Patient         `json:"patients"`
	RoundsLogs  []models.RoundsLog       `json:"roundsLogs"`
	Transfers   []models.Transfer        `json:"transfers"`
	Photos      []PhotoBackup            `json:"photos"`
	Settings    []models.Setting         `json:"settings"`
	Templates   []models.ChemoTemplate   `json:"templates"`
	Courses     []models.ChemoCourse     `json:"courses"`
	Assessments []models.ChemoAssessment `json:"assessments"`
}

// Download streams the full snapshot as one JSON attachment.
func (h *BackupHandler) Download(c *gin.Context) {
	var snap Snapshot
	loads := []interface{}{
		&snap.Hospitals, &snap.Wards, &snap.Patients, &snap.RoundsLogs,
		&snap.Transfers, &snap.Settings, &snap.Templates,
		&snap.Courses, &snap.Assessments,
	}
	for _, dest := range loads {
		if err := h.DB.Find(dest).Error; err != nil {
			utils.InternalServerError(c, "Failed to build backup: "+err.Error())
			return
		}
	}

	var photos []models.PatientPhoto
	if err := h.DB.Find(&photos).Error; err != nil {
		utils.InternalServerError(c, "Failed to build backup: "+err.Error())
		return
	}
	snap.Photos = make([]PhotoBackup, 0, len(photos))
	for _, photo := range photos {
		snap.Photos = append(snap.Photos, PhotoBackup{PatientPhoto: photo, FileData: photo.FileData})
	}

	c.Writer.Header().Set("Content-Disposition", `attachment; filename="admit_planner_backup.json"`)
	c.JSON(http.StatusOK, snap)
}

// Restore replaces the entire store with an uploaded snapshot. All
// existing rows are dropped first; the restore is all-or-nothing.
func (h *BackupHandler) Restore(c *gin.Context) {
	var snap Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.BadRequest(c, "Invalid backup payload: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		wipes := []interface{}{
			&models.ChemoAssessment{}, &models.ChemoCourse{}, &models.ChemoTemplate{},
			&models.Setting{}, &models.PatientPhoto{}, &models.Transfer{},
			&models.RoundsLog{}, &models.Patient{}, &models.Ward{}, &models.Hospital{},
		}
		for _, wipe := range wipes {
			if err := tx.Where("1 = 1").Delete(wipe).Error; err != nil {
				return err
			}
		}

		photos := make([]models.PatientPhoto, 0, len(snap.Photos))
		for _, backup := range snap.Photos {
			photo := backup.PatientPhoto
			photo.FileData = backup.FileData
			photos = append(photos, photo)
		}

		inserts := []struct {
			rows interface{}
			size int
		}{
			{&snap.Hospitals, len(snap.Hospitals)},
			{&snap.Wards, len(snap.Wards)},
			{&snap.Patients, len(snap.Patients)},
			{&snap.RoundsLogs, len(snap.RoundsLogs)},
			{&snap.Transfers, len(snap.Transfers)},
			{&photos, len(photos)},
			{&snap.Settings, len(snap.Settings)},
			{&snap.Templates, len(snap.Templates)},
			{&snap.Courses, len(snap.Courses)},
			{&snap.Assessments, len(snap.Assessments)},
		}
		for _, insert := range inserts {
			if insert.size == 0 {
				continue
			}
			if err := tx.Create(insert.rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to restore backup: "+err.Error())
		return
	}

	utils.Success(c, "Backup restored successfully", nil)
}
