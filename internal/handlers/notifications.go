package handlers

import (
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/notify"
	"admit-planner-server/internal/utils"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationHandler computes missed-rounds summaries and pushes them to
// the configured webhook.
type NotificationHandler struct {
	DB     *gorm.DB
	Client *notify.LineClient
	Log    *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB, client *notify.LineClient, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{DB: db, Client: client, Log: log}
}

// MissedPatient is one admitted patient without a rounds note today.
type MissedPatient struct {
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
	Hospital    string `json:"hospital"`
	Ward        string `json:"ward"`
	LastRounded string `json:"lastRounded,omitempty"`
}

func (h *NotificationHandler) missedToday() ([]MissedPatient, error) {
	var patients []models.Patient
	err := h.DB.Preload("Hospital").Preload("Ward").
		Where("status = ?", models.StatusAdmitted).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	missed := make([]MissedPatient, 0)
	for _, p := range patients {
		if p.LastRoundedAt != nil && p.LastRoundedAt.Format("2006-01-02") == today {
			continue
		}
		m := MissedPatient{PatientID: p.ID, PatientName: p.PatientName}
		if p.Hospital != nil {
			m.Hospital = p.Hospital.Name
		}
		if p.Ward != nil {
			m.Ward = p.Ward.Name
		}
		if p.LastRoundedAt != nil {
			m.LastRounded = p.LastRoundedAt.Format(time.RFC3339)
		}
		missed = append(missed, m)
	}
	return missed, nil
}

// GetMissedRounds lists admitted patients with no rounds note today.
func (h *NotificationHandler) GetMissedRounds(c *gin.Context) {
	missed, err := h.missedToday()
	if err != nil {
		utils.InternalServerError(c, "Failed to compute missed rounds: "+err.Error())
		return
	}
	utils.Success(c, "Missed rounds computed successfully", missed)
}

// SendMissedRoundsResponse reports the best-effort delivery outcome.
type SendMissedRoundsResponse struct {
	Sent        bool `json:"sent"`
	MissedCount int  `json:"missedCount"`
}

// SendMissedRounds pushes the missed-rounds summary through the webhook.
// One attempt; the boolean result is the whole contract, no retry.
func (h *NotificationHandler) SendMissedRounds(c *gin.Context) {
	if !h.Client.Configured() {
		utils.BadRequest(c, "No notification token configured")
		return
	}

	missed, err := h.missedToday()
	if err != nil {
		utils.InternalServerError(c, "Failed to compute missed rounds: "+err.Error())
		return
	}
	if len(missed) == 0 {
		utils.Success(c, "No missed rounds today", SendMissedRoundsResponse{Sent: false, MissedCount: 0})
		return
	}

	var b strings.Builder
	b.WriteString("No rounds note today for:\n")
	for _, m := range missed {
		fmt.Fprintf(&b, "- %s (%s / %s)\n", m.PatientName, m.Hospital, m.Ward)
	}

	sent := h.Client.Send(b.String())
	if !sent {
		h.Log.Warn("missed-rounds notification failed", zap.Int("missed", len(missed)))
	}
	utils.Success(c, "Missed rounds notification processed", SendMissedRoundsResponse{Sent: sent, MissedCount: len(missed)})
}
