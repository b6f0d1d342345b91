package handlers

import (
	"admit-planner-server/internal/chemo"
	"admit-planner-server/internal/models"
	"admit-planner-server/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TemplateHandler handles regimen template reference data.
type TemplateHandler struct {
	DB *gorm.DB
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{DB: db}
}

// GetTemplates lists all regimen templates ordered by name.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	var templates []models.ChemoTemplate
	if err := h.DB.Order("name").Find(&templates).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch templates: "+err.Error())
		return
	}
	utils.Success(c, "Templates fetched successfully", templates)
}

// GetTemplateByName fetches one regimen template.
func (h *TemplateHandler) GetTemplateByName(c *gin.Context) {
	var template models.ChemoTemplate
	if err := h.DB.Where("name = ?", c.Param("name")).First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Template not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Template fetched successfully", template)
}

// RuleRequest is one drug rule of a template being created.
type RuleRequest struct {
	Drug        string     `json:"drug" binding:"required"`
	Mode        chemo.Mode `json:"mode" binding:"required,oneof=per_m2 per_kg fixed"`
	DosePerM2   *float64   `json:"dosePerM2" binding:"omitempty,gt=0"`
	DosePerKg   *float64   `json:"dosePerKg" binding:"omitempty,gt=0"`
	FixedDoseMg *float64   `json:"fixedDoseMg" binding:"omitempty,gt=0"`
	MaxMg       *float64   `json:"maxMg" binding:"omitempty,gt=0"`
}

// CreateTemplateRequest adds a custom regimen template.
type CreateTemplateRequest struct {
	Name  string        `json:"name" binding:"required"`
	Rules []RuleRequest `json:"rules" binding:"required,min=1,dive"`
}

// CreateTemplate stores a new regimen. The coefficient matching the rule's
// mode must be present; names are unique.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.BadRequest(c, "Template name must not be empty")
		return
	}

	rules := make(models.RuleList, 0, len(req.Rules))
	for _, r := range req.Rules {
		switch r.Mode {
		case chemo.ModePerBSA:
			if r.DosePerM2 == nil {
				utils.BadRequest(c, "Rule for "+r.Drug+": per_m2 mode requires dosePerM2")
				return
			}
		case chemo.ModePerKg:
			if r.DosePerKg == nil {
				utils.BadRequest(c, "Rule for "+r.Drug+": per_kg mode requires dosePerKg")
				return
			}
		case chemo.ModeFixed:
			if r.FixedDoseMg == nil {
				utils.BadRequest(c, "Rule for "+r.Drug+": fixed mode requires fixedDoseMg")
				return
			}
		}
		rules = append(rules, chemo.DoseRule{
			Drug:        strings.TrimSpace(r.Drug),
			Mode:        r.Mode,
			DosePerM2:   r.DosePerM2,
			DosePerKg:   r.DosePerKg,
			FixedDoseMg: r.FixedDoseMg,
			MaxMg:       r.MaxMg,
		})
	}

	var existing int64
	if err := h.DB.Model(&models.ChemoTemplate{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if existing > 0 {
		utils.Conflict(c, "A template with this name already exists")
		return
	}

	template := models.ChemoTemplate{Name: name, Rules: rules}
	if err := h.DB.Create(&template).Error; err != nil {
		utils.InternalServerError(c, "Failed to create template: "+err.Error())
		return
	}

	utils.Created(c, "Template created successfully", template)
}
