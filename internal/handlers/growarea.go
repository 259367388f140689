package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/starkbrilliance/smartharvest/internal/errors"
	"github.com/starkbrilliance/smartharvest/internal/services"
)

// GrowAreaHandler coordinates hierarchy HTTP handlers.
type GrowAreaHandler struct {
	areaService *services.AreaService
}

// NewGrowAreaHandler creates a new GrowAreaHandler.
func NewGrowAreaHandler(areaService *services.AreaService) *GrowAreaHandler {
	return &GrowAreaHandler{
		areaService: areaService,
	}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateGrowArea creates a new grow area
func (h *GrowAreaHandler) CreateGrowArea(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	area, err := h.areaService.CreateGrowArea(req.Name)
	if err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, area)
}

// ListGrowAreas lists all grow areas
func (h *GrowAreaHandler) ListGrowAreas(c *gin.Context) {
	areas, err := h.areaService.ListGrowAreas()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch grow areas")
		return
	}

	c.JSON(http.StatusOK, areas)
}

// GetGrowArea returns a grow area with its subareas
func (h *GrowAreaHandler) GetGrowArea(c *gin.Context) {
	id := c.Param("id")

	area, err := h.areaService.GetGrowArea(id)
	if err != nil {
		respondAreaError(c, err)
		return
	}

	subareas, err := h.areaService.ListSubareas(id)
	if err != nil {
		respondAreaError(c, err)
		return
	}
	area.Subareas = subareas

	c.JSON(http.StatusOK, area)
}

// UpdateGrowArea renames a grow area
func (h *GrowAreaHandler) UpdateGrowArea(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	area, err := h.areaService.RenameGrowArea(c.Param("id"), req.Name)
	if err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusOK, area)
}

// DeleteGrowArea deletes a grow area unless something still references it
func (h *GrowAreaHandler) DeleteGrowArea(c *gin.Context) {
	if err := h.areaService.DeleteGrowArea(c.Param("id")); err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Grow area deleted successfully",
	})
}

// CreateSubarea creates a subarea under a grow area
func (h *GrowAreaHandler) CreateSubarea(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subarea, err := h.areaService.CreateSubarea(c.Param("id"), req.Name)
	if err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subarea)
}

// ListSubareas lists the subareas of a grow area
func (h *GrowAreaHandler) ListSubareas(c *gin.Context) {
	subareas, err := h.areaService.ListSubareas(c.Param("id"))
	if err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusOK, subareas)
}

// UpdateSubarea renames a subarea
func (h *GrowAreaHandler) UpdateSubarea(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subarea, err := h.areaService.RenameSubarea(c.Param("id"), req.Name)
	if err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusOK, subarea)
}

// DeleteSubarea deletes a subarea unless crops still reference it
func (h *GrowAreaHandler) DeleteSubarea(c *gin.Context) {
	if err := h.areaService.DeleteSubarea(c.Param("id")); err != nil {
		respondAreaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subarea deleted successfully",
	})
}

func respondAreaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAreaNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGrowAreaNotFound):
		apierrors.NotFound(c, "Grow area not found")
	case errors.Is(err, services.ErrSubareaNotFound):
		apierrors.NotFound(c, "Subarea not found")
	case errors.Is(err, services.ErrGrowAreaInUse),
		errors.Is(err, services.ErrSubareaInUse):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
