package routes

import (
	"admit-planner-server/internal/config"
	"admit-planner-server/internal/handlers"
	"admit-planner-server/internal/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	// Initialize handlers
	hospitalHandler := handlers.NewHospitalHandler(db)
	wardHandler := handlers.NewWardHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	roundsHandler := handlers.NewRoundsHandler(db)
	transferHandler := handlers.NewTransferHandler(db)
	photoHandler := handlers.NewPhotoHandler(db)
	chemoHandler := handlers.NewChemoHandler(db)
	templateHandler := handlers.NewTemplateHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	backupHandler := handlers.NewBackupHandler(db)

	lineClient := notify.NewLineClient(cfg.Notify, log)
	notificationHandler := handlers.NewNotificationHandler(db, lineClient, log)

	api := router.Group("/api/v1")
	{
		hospitalRoutes := api.Group("/hospitals")
		{
			hospitalRoutes.POST("", hospitalHandler.CreateHospital)
			hospitalRoutes.GET("", hospitalHandler.GetHospitals)
			hospitalRoutes.DELETE("/:id", hospitalHandler.DeleteHospital)
		}

		wardRoutes := api.Group("/wards")
		{
			wardRoutes.POST("", wardHandler.CreateWard)
			wardRoutes.GET("", wardHandler.GetWards)
			wardRoutes.DELETE("/:id", wardHandler.DeleteWard)
		}

		patientRoutes := api.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.PATCH("/:id/status", patientHandler.UpdatePatientStatus)
			patientRoutes.POST("/:id/discharge", patientHandler.DischargePatient)

			patientRoutes.POST("/:id/rounds", roundsHandler.CreateRoundsLog)
			patientRoutes.GET("/:id/rounds", roundsHandler.GetRoundsLogs)

			patientRoutes.POST("/:id/transfers", transferHandler.CreateTransfer)
			patientRoutes.GET("/:id/transfers", transferHandler.GetTransfers)

			patientRoutes.POST("/:id/photos", photoHandler.UploadPhoto)
			patientRoutes.GET("/:id/photos", photoHandler.GetPhotos)

			patientRoutes.PUT("/:id/body-metrics", chemoHandler.UpdateBodyMetrics)
			patientRoutes.PUT("/:id/chemo-plan", chemoHandler.UpdateChemoPlan)
			patientRoutes.GET("/:id/chemo/doses", chemoHandler.GetDoseProposals)
			patientRoutes.POST("/:id/chemo/cycles", chemoHandler.RecordCycle)
			patientRoutes.GET("/:id/chemo/cycles", chemoHandler.GetCycles)
			patientRoutes.POST("/:id/chemo/assessments", chemoHandler.CreateAssessment)
			patientRoutes.GET("/:id/chemo/assessments", chemoHandler.GetAssessments)
			patientRoutes.GET("/:id/chemo/export", chemoHandler.ExportChemoHistory)
		}

		// Photo content is addressed by its own ID, outside the patient group.
		api.GET("/photos/:photoId", photoHandler.GetPhotoData)

		templateRoutes := api.Group("/chemo-templates")
		{
			templateRoutes.GET("", templateHandler.GetTemplates)
			templateRoutes.GET("/:name", templateHandler.GetTemplateByName)
			templateRoutes.POST("", templateHandler.CreateTemplate)
		}

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSettings)

		api.GET("/dashboard", dashboardHandler.GetDashboard)

		api.GET("/notifications/missed-rounds", notificationHandler.GetMissedRounds)
		api.POST("/notifications/missed-rounds/send", notificationHandler.SendMissedRounds)

		adminRoutes := api.Group("/admin")
		{
			adminRoutes.GET("/backup", backupHandler.Download)
			adminRoutes.POST("/restore", backupHandler.Restore)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
