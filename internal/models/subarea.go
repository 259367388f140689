package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subarea struct {
	ID         string    `gorm:"type:uuid;primarykey" json:"id"`
	GrowAreaID string    `gorm:"type:uuid;not null;index" json:"grow_area_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	GrowArea GrowArea `gorm:"foreignKey:GrowAreaID" json:"grow_area,omitempty"`
}

func (s *Subarea) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
