package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CropStatus string

const (
	CropStatusGrowing   CropStatus = "growing"
	CropStatusFlowering CropStatus = "flowering"
	CropStatusReady     CropStatus = "ready"
	CropStatusHarvested CropStatus = "harvested"
)

// Valid reports whether the status is one of the known labels. Transitions
// between valid labels are not restricted; operators may override freely.
func (s CropStatus) Valid() bool {
	switch s {
	case CropStatusGrowing, CropStatusFlowering, CropStatusReady, CropStatusHarvested:
		return true
	}
	return false
}

type MaintenanceFrequency string

const (
	FrequencyDaily      MaintenanceFrequency = "daily"
	FrequencyWeekly     MaintenanceFrequency = "weekly"
	FrequencyEvery2Days MaintenanceFrequency = "every_2_days"
	FrequencyEvery3Days MaintenanceFrequency = "every_3_days"
)

func (f MaintenanceFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyEvery2Days, FrequencyEvery3Days:
		return true
	}
	return false
}

// MaintenanceEntry is a recurring care task attached to a crop or template.
// The next occurrence is derived on read, never stored.
type MaintenanceEntry struct {
	EventType string               `json:"event_type"`
	Frequency MaintenanceFrequency `json:"frequency"`
	Notes     string               `json:"notes,omitempty"`
	StartDate time.Time            `json:"start_date"`
	EndDate   time.Time            `json:"end_date"`
}

// MaintenanceEventTypes lists the event types a maintenance entry may carry.
var MaintenanceEventTypes = map[string]bool{
	"watering":    true,
	"fertilizing": true,
	"pruning":     true,
	"inspection":  true,
	"treatment":   true,
	"other":       true,
	"thinning":    true,
	"harvesting":  true,
}

type Crop struct {
	ID                  string             `gorm:"type:uuid;primarykey" json:"id"`
	Name                string             `gorm:"not null" json:"name"`
	Variety             string             `json:"variety"`
	SubareaID           *string            `gorm:"type:uuid;index" json:"subarea_id"`
	AreaID              *string            `gorm:"type:uuid;index" json:"area_id"`
	PlantedDate         time.Time          `gorm:"not null" json:"planted_date"`
	ExpectedHarvestDate time.Time          `gorm:"not null" json:"expected_harvest_date"`
	ActualHarvestDate   *time.Time         `json:"actual_harvest_date"`
	Status              CropStatus         `gorm:"type:varchar(20);not null;default:'growing'" json:"status"`
	Notes               string             `gorm:"type:text" json:"notes"`
	ImageURL            string             `json:"image_url"`
	IsActive            bool               `gorm:"not null;default:true" json:"is_active"`
	MaintenanceSchedule []MaintenanceEntry `gorm:"serializer:json" json:"maintenance_schedule"`
	CreatedAt           time.Time          `json:"created_at"`

	// Relations
	Subarea *Subarea  `gorm:"foreignKey:SubareaID" json:"subarea,omitempty"`
	Area    *GrowArea `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	Events  []Event   `gorm:"foreignKey:CropID" json:"events,omitempty"`
}

func (c *Crop) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
