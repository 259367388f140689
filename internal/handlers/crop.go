package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/starkbrilliance/smartharvest/internal/dto"
	apierrors "github.com/starkbrilliance/smartharvest/internal/errors"
	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"github.com/starkbrilliance/smartharvest/internal/services"
	"github.com/starkbrilliance/smartharvest/internal/utils"
)

// CropHandler coordinates crop lifecycle HTTP handlers.
type CropHandler struct {
	cropService *services.CropService
}

// NewCropHandler creates a new CropHandler.
func NewCropHandler(cropService *services.CropService) *CropHandler {
	return &CropHandler{
		cropService: cropService,
	}
}

type maintenanceEntryRequest struct {
	EventType string `json:"event_type" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
	Notes     string `json:"notes"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// ListCrops returns active crops, newest first, with derived progress fields
func (h *CropHandler) ListCrops(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	crops, total, err := h.cropService.ListCrops(repository.ListParams{
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch crops")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"crops": dto.ToCropDTOs(crops, time.Now()),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCrop returns a crop with its event history. This endpoint is public
// (QR code labels link here) and still resolves soft-deleted crops.
func (h *CropHandler) GetCrop(c *gin.Context) {
	crop, err := h.cropService.GetCrop(c.Param("id"))
	if err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCropDetailDTO(*crop, time.Now()))
}

// CreateCrop creates a new crop
func (h *CropHandler) CreateCrop(c *gin.Context) {
	type CreateCropRequest struct {
		Name                string                    `json:"name" binding:"required"`
		Variety             string                    `json:"variety"`
		SubareaID           *string                   `json:"subarea_id"`
		AreaID              *string                   `json:"area_id"`
		PlantedDate         string                    `json:"planted_date" binding:"required"`
		ExpectedHarvestDate string                    `json:"expected_harvest_date" binding:"required"`
		Status              string                    `json:"status"`
		Notes               string                    `json:"notes"`
		ImageURL            string                    `json:"image_url"`
		MaintenanceSchedule []maintenanceEntryRequest `json:"maintenance_schedule"`
	}

	var req CreateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	planted, err := parseDate(req.PlantedDate)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"planted_date": err.Error()})
		return
	}
	expected, err := parseDate(req.ExpectedHarvestDate)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"expected_harvest_date": err.Error()})
		return
	}

	schedule, err := toMaintenanceSchedule(req.MaintenanceSchedule)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid maintenance schedule", gin.H{"maintenance_schedule": err.Error()})
		return
	}

	crop, err := h.cropService.CreateCrop(services.CreateCropInput{
		Name:                req.Name,
		Variety:             req.Variety,
		SubareaID:           normalizeID(req.SubareaID),
		AreaID:              normalizeID(req.AreaID),
		PlantedDate:         planted,
		ExpectedHarvestDate: expected,
		Status:              models.CropStatus(req.Status),
		Notes:               req.Notes,
		ImageURL:            req.ImageURL,
		MaintenanceSchedule: schedule,
	})
	if err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCropDTO(*crop, time.Now()))
}

// UpdateCrop applies a partial update. Only the fields present in the
// request body are touched; explicit nulls clear the location references.
func (h *CropHandler) UpdateCrop(c *gin.Context) {
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateCropInput

	if v, ok := rawReq["name"]; ok {
		if s, ok := v.(string); ok {
			input.Name = &s
		}
	}
	if v, ok := rawReq["variety"]; ok {
		if s, ok := v.(string); ok {
			input.Variety = &s
		}
	}
	if v, ok := rawReq["subarea_id"]; ok {
		if s, ok := v.(string); ok && s != "" {
			input.SubareaID = &s
		} else {
			input.ClearSubarea = true
		}
	}
	if v, ok := rawReq["area_id"]; ok {
		if s, ok := v.(string); ok && s != "" {
			input.AreaID = &s
		} else {
			input.ClearArea = true
		}
	}
	if v, ok := rawReq["planted_date"]; ok {
		t, err := parseDateValue(v)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"planted_date": err.Error()})
			return
		}
		input.PlantedDate = t
	}
	if v, ok := rawReq["expected_harvest_date"]; ok {
		t, err := parseDateValue(v)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"expected_harvest_date": err.Error()})
			return
		}
		input.ExpectedHarvestDate = t
	}
	if v, ok := rawReq["status"]; ok {
		if s, ok := v.(string); ok {
			status := models.CropStatus(s)
			input.Status = &status
		}
	}
	if v, ok := rawReq["notes"]; ok {
		if s, ok := v.(string); ok {
			input.Notes = &s
		}
	}
	if v, ok := rawReq["image_url"]; ok {
		if s, ok := v.(string); ok {
			input.ImageURL = &s
		}
	}
	if v, ok := rawReq["maintenance_schedule"]; ok {
		entries, err := decodeMaintenanceValue(v)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid maintenance schedule", gin.H{"maintenance_schedule": err.Error()})
			return
		}
		input.MaintenanceSchedule = entries
		input.SetMaintenance = true
	}

	crop, err := h.cropService.UpdateCrop(c.Param("id"), input)
	if err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCropDTO(*crop, time.Now()))
}

// HarvestCrop marks a crop harvested, stamping status and timestamp together
func (h *CropHandler) HarvestCrop(c *gin.Context) {
	crop, err := h.cropService.Harvest(c.Param("id"))
	if err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCropDTO(*crop, time.Now()))
}

// DeleteCrop soft deletes a crop
func (h *CropHandler) DeleteCrop(c *gin.Context) {
	if err := h.cropService.DeleteCrop(c.Param("id")); err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Crop deleted successfully",
	})
}

// ListEvents returns a crop's event log, newest event date first
func (h *CropHandler) ListEvents(c *gin.Context) {
	events, err := h.cropService.ListEvents(c.Param("id"))
	if err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// CreateEvent appends an event to a crop's log. Events are immutable once
// created; maintenance completions are recorded through this same path.
func (h *CropHandler) CreateEvent(c *gin.Context) {
	type CreateEventRequest struct {
		Type      string `json:"type" binding:"required"`
		Notes     string `json:"notes"`
		EventDate string `json:"event_date" binding:"required"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid date", gin.H{"event_date": err.Error()})
		return
	}

	event, err := h.cropService.CreateEvent(services.CreateEventInput{
		CropID:    c.Param("id"),
		Type:      models.EventType(req.Type),
		Notes:     req.Notes,
		EventDate: eventDate,
	})
	if err != nil {
		respondCropError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetStats returns the dashboard counters
func (h *CropHandler) GetStats(c *gin.Context) {
	stats, err := h.cropService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func respondCropError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCropNotFound):
		apierrors.NotFound(c, "Crop not found")
	case errors.Is(err, services.ErrSubareaNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrGrowAreaNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCropNameRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidEventType),
		errors.Is(err, services.ErrHarvestBeforePlanting),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrInvalidMaintenance),
		errors.Is(err, services.ErrLocationMismatch),
		errors.Is(err, services.ErrEventDateRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// parseDate accepts both full RFC3339 timestamps and bare dates, matching
// what the form client sends.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("expected an ISO date, got %q", value)
}

func parseDateValue(v any) (*time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected an ISO date string")
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// normalizeID maps absent and empty-string references to nil
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func toMaintenanceSchedule(entries []maintenanceEntryRequest) ([]models.MaintenanceEntry, error) {
	schedule := make([]models.MaintenanceEntry, len(entries))
	for i, entry := range entries {
		start, err := parseDate(entry.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(entry.EndDate)
		if err != nil {
			return nil, err
		}
		schedule[i] = models.MaintenanceEntry{
			EventType: entry.EventType,
			Frequency: models.MaintenanceFrequency(entry.Frequency),
			Notes:     entry.Notes,
			StartDate: start,
			EndDate:   end,
		}
	}
	return schedule, nil
}

func decodeMaintenanceValue(v any) ([]models.MaintenanceEntry, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule")
	}
	var entries []maintenanceEntryRequest
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule")
	}
	return toMaintenanceSchedule(entries)
}
