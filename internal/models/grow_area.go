package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GrowArea struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Subareas []Subarea `gorm:"foreignKey:GrowAreaID" json:"subareas,omitempty"`
}

func (a *GrowArea) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
