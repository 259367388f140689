package repository

import (
	"time"

	"github.com/starkbrilliance/smartharvest/internal/models"
)

// CropRepository defines the interface for crop data access
type CropRepository interface {
	// Create creates a new crop
	Create(crop *models.Crop) error

	// FindByID finds a crop by ID, including soft-deleted crops, with
	// optional preloading
	FindByID(id string, preload ...string) (*models.Crop, error)

	// List retrieves active crops, newest first, with pagination
	List(params ListParams) ([]models.Crop, int64, error)

	// Update updates a crop
	Update(crop *models.Crop) error

	// Harvest atomically marks a crop harvested and stamps the actual
	// harvest date. Repeat calls keep the first timestamp.
	Harvest(id string, now time.Time) (*models.Crop, error)

	// Deactivate soft deletes a crop (is_active = false)
	Deactivate(id string) error

	// CountBySubarea counts active crops referencing a subarea
	CountBySubarea(subareaID string) (int64, error)

	// CountByArea counts active crops referencing a grow area directly
	CountByArea(areaID string) (int64, error)

	// Stats aggregates the dashboard counters for active crops
	Stats(now time.Time) (CropStats, error)
}

// ListParams holds pagination options for crop listings
type ListParams struct {
	Offset int
	Limit  int
}

// CropStats holds the dashboard counters
type CropStats struct {
	Active    int64 `json:"active"`
	Ready     int64 `json:"ready"`
	Overdue   int64 `json:"overdue"`
	Harvested int64 `json:"harvested"`
}

// EventRepository defines the interface for event data access.
// Events are append-only; there is deliberately no update or delete.
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// ListByCropID lists events for a crop, newest event date first
	ListByCropID(cropID string) ([]models.Event, error)
}

// AreaRepository defines the interface for grow area and subarea data access
type AreaRepository interface {
	// CreateGrowArea creates a new grow area
	CreateGrowArea(area *models.GrowArea) error

	// FindGrowAreaByID finds a grow area by ID
	FindGrowAreaByID(id string) (*models.GrowArea, error)

	// ListGrowAreas lists all grow areas
	ListGrowAreas() ([]models.GrowArea, error)

	// UpdateGrowArea updates a grow area
	UpdateGrowArea(area *models.GrowArea) error

	// DeleteGrowArea hard deletes a grow area
	DeleteGrowArea(id string) error

	// CreateSubarea creates a new subarea
	CreateSubarea(subarea *models.Subarea) error

	// FindSubareaByID finds a subarea by ID
	FindSubareaByID(id string) (*models.Subarea, error)

	// ListSubareas lists subareas belonging to a grow area
	ListSubareas(growAreaID string) ([]models.Subarea, error)

	// UpdateSubarea updates a subarea
	UpdateSubarea(subarea *models.Subarea) error

	// DeleteSubarea hard deletes a subarea
	DeleteSubarea(id string) error

	// CountSubareas counts subareas belonging to a grow area
	CountSubareas(growAreaID string) (int64, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a new session
	Create(session *models.Session) error

	// FindByToken finds a session by its bearer token
	FindByToken(token string) (*models.Session, error)

	// Invalidate flips is_authenticated off, keeping the row for audit
	Invalidate(token string) error
}

// TemplateRepository defines the interface for crop template data access
type TemplateRepository interface {
	// Create creates a new crop template
	Create(template *models.CropTemplate) error

	// FindByID finds a template by ID
	FindByID(id string) (*models.CropTemplate, error)

	// FindByNameAndVariety finds an exact template match,
	// case-insensitively on both columns
	FindByNameAndVariety(name, variety string) (*models.CropTemplate, error)

	// List lists all templates
	List() ([]models.CropTemplate, error)

	// Search matches a case-insensitive substring on name or variety
	Search(query string) ([]models.CropTemplate, error)

	// Update updates a template
	Update(template *models.CropTemplate) error

	// Delete hard deletes a template
	Delete(id string) error
}
