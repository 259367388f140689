package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/starkbrilliance/smartharvest/internal/errors"
	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"github.com/starkbrilliance/smartharvest/internal/services"
	"gorm.io/gorm"
)

// TemplateHandler coordinates crop template HTTP handlers, including the
// advice lookup.
type TemplateHandler struct {
	templateRepo  repository.TemplateRepository
	adviceService *services.AdviceService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateRepo repository.TemplateRepository, adviceService *services.AdviceService) *TemplateHandler {
	return &TemplateHandler{
		templateRepo:  templateRepo,
		adviceService: adviceService,
	}
}

// ListTemplates lists all crop templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateRepo.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch crop templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// CreateTemplate creates a crop template
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	type CreateTemplateRequest struct {
		Name                string                    `json:"name" binding:"required"`
		Variety             string                    `json:"variety" binding:"required"`
		GrowingDays         int                       `json:"growing_days" binding:"required,gt=0"`
		SpecialInstructions string                    `json:"special_instructions"`
		MaintenanceSchedule []maintenanceEntryRequest `json:"maintenance_schedule"`
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	schedule, err := toMaintenanceSchedule(req.MaintenanceSchedule)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid maintenance schedule", gin.H{"maintenance_schedule": err.Error()})
		return
	}

	template := models.CropTemplate{
		Name:                req.Name,
		Variety:             req.Variety,
		GrowingDays:         req.GrowingDays,
		SpecialInstructions: req.SpecialInstructions,
		MaintenanceSchedule: schedule,
	}

	if err := h.templateRepo.Create(&template); err != nil {
		apierrors.InternalError(c, "Failed to create crop template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// UpdateTemplate applies a partial update to a template
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	template, err := h.templateRepo.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Crop template not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch crop template")
		return
	}

	type UpdateTemplateRequest struct {
		Name                *string `json:"name"`
		Variety             *string `json:"variety"`
		GrowingDays         *int    `json:"growing_days"`
		SpecialInstructions *string `json:"special_instructions"`
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Variety != nil {
		template.Variety = *req.Variety
	}
	if req.GrowingDays != nil {
		if *req.GrowingDays <= 0 {
			apierrors.BadRequest(c, "growing_days must be positive")
			return
		}
		template.GrowingDays = *req.GrowingDays
	}
	if req.SpecialInstructions != nil {
		template.SpecialInstructions = *req.SpecialInstructions
	}

	if err := h.templateRepo.Update(template); err != nil {
		apierrors.InternalError(c, "Failed to update crop template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes a template
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateRepo.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Crop template not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete crop template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Crop template deleted successfully",
	})
}

// SearchTemplates matches a case-insensitive substring on name or variety
func (h *TemplateHandler) SearchTemplates(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		apierrors.BadRequest(c, "Query parameter q is required")
		return
	}

	templates, err := h.templateRepo.Search(query)
	if err != nil {
		apierrors.InternalError(c, "Failed to search crop templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetAdvice runs the advice fallback chain: template hit first, external
// advisor second. A chain that produces nothing is a 500 with a distinct
// code so the client can degrade quietly.
func (h *TemplateHandler) GetAdvice(c *gin.Context) {
	cropName := c.Query("cropName")
	if cropName == "" {
		apierrors.BadRequest(c, "Query parameter cropName is required")
		return
	}
	variety := c.Query("variety")
	growContext := c.Query("context")

	advice, err := h.adviceService.GetAdvice(c.Request.Context(), cropName, variety, growContext)
	if err != nil {
		if errors.Is(err, services.ErrAdviceUnavailable) {
			apierrors.AdviceUnavailable(c)
			return
		}
		apierrors.InternalError(c, "Failed to fetch advice")
		return
	}

	c.JSON(http.StatusOK, advice)
}
