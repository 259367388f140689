package repository

import (
	"github.com/starkbrilliance/smartharvest/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// ListByCropID lists events for a crop, newest event date first
func (r *GormEventRepository) ListByCropID(cropID string) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Where("crop_id = ?", cropID).
		Order("event_date DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
