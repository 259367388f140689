package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CropTemplate is a lookup row keyed case-insensitively by (name, variety).
// The advice chain consults templates before calling the external advisor.
type CropTemplate struct {
	ID                  string             `gorm:"type:uuid;primarykey" json:"id"`
	Name                string             `gorm:"type:varchar(255);not null" json:"name"`
	Variety             string             `gorm:"type:varchar(255);not null" json:"variety"`
	GrowingDays         int                `gorm:"not null" json:"growing_days"`
	SpecialInstructions string             `gorm:"type:text" json:"special_instructions"`
	MaintenanceSchedule []MaintenanceEntry `gorm:"serializer:json" json:"maintenance_schedule"`
	CreatedAt           time.Time          `json:"created_at"`
}

func (t *CropTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
