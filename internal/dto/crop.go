package dto

import (
	"time"

	"github.com/starkbrilliance/smartharvest/internal/growth"
	"github.com/starkbrilliance/smartharvest/internal/models"
)

// NoLocation is the display location for crops placed nowhere.
const NoLocation = "No location specified"

// MaintenanceEntryDTO is a maintenance entry with its derived next occurrence.
type MaintenanceEntryDTO struct {
	models.MaintenanceEntry
	NextOccurrence *time.Time `json:"next_occurrence"`
}

// CropDTO represents a crop in API responses, with the derived progress
// fields recomputed on every read.
type CropDTO struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Variety             string                `json:"variety"`
	SubareaID           *string               `json:"subarea_id"`
	AreaID              *string               `json:"area_id"`
	Location            string                `json:"location"`
	PlantedDate         time.Time             `json:"planted_date"`
	ExpectedHarvestDate time.Time             `json:"expected_harvest_date"`
	ActualHarvestDate   *time.Time            `json:"actual_harvest_date"`
	Status              models.CropStatus     `json:"status"`
	Notes               string                `json:"notes"`
	ImageURL            string                `json:"image_url"`
	IsActive            bool                  `json:"is_active"`
	CreatedAt           time.Time             `json:"created_at"`
	DaysSincePlanted    int                   `json:"days_since_planted"`
	DaysUntilHarvest    int                   `json:"days_until_harvest"`
	ProgressPercent     int                   `json:"progress_percent"`
	Overdue             bool                  `json:"overdue"`
	MaintenanceSchedule []MaintenanceEntryDTO `json:"maintenance_schedule"`
}

// CropDetailDTO is a crop plus its event history
type CropDetailDTO struct {
	CropDTO
	Events []models.Event `json:"events"`
}

// ToCropDTO converts a Crop model to CropDTO, deriving progress, overdue
// state, next maintenance occurrences, and the display location.
func ToCropDTO(crop models.Crop, now time.Time) CropDTO {
	dto := CropDTO{
		ID:                  crop.ID,
		Name:                crop.Name,
		Variety:             crop.Variety,
		SubareaID:           crop.SubareaID,
		AreaID:              crop.AreaID,
		Location:            displayLocation(crop),
		PlantedDate:         crop.PlantedDate,
		ExpectedHarvestDate: crop.ExpectedHarvestDate,
		ActualHarvestDate:   crop.ActualHarvestDate,
		Status:              crop.Status,
		Notes:               crop.Notes,
		ImageURL:            crop.ImageURL,
		IsActive:            crop.IsActive,
		CreatedAt:           crop.CreatedAt,
		DaysSincePlanted:    growth.DaysSincePlanted(crop.PlantedDate, now),
		DaysUntilHarvest:    growth.DaysUntilHarvest(crop.ExpectedHarvestDate, now),
		ProgressPercent:     growth.ProgressPercent(crop.PlantedDate, crop.ExpectedHarvestDate, now),
		Overdue:             growth.Overdue(crop.Status, crop.ExpectedHarvestDate, now),
	}

	dto.MaintenanceSchedule = make([]MaintenanceEntryDTO, len(crop.MaintenanceSchedule))
	for i, entry := range crop.MaintenanceSchedule {
		// Frequencies are validated on write; an unknown token just
		// yields no next occurrence here.
		next, _ := growth.NextEntryOccurrence(entry, now)
		dto.MaintenanceSchedule[i] = MaintenanceEntryDTO{
			MaintenanceEntry: entry,
			NextOccurrence:   next,
		}
	}

	return dto
}

// ToCropDetailDTO converts a crop with loaded events to a detail DTO
func ToCropDetailDTO(crop models.Crop, now time.Time) CropDetailDTO {
	events := crop.Events
	if events == nil {
		events = []models.Event{}
	}
	return CropDetailDTO{
		CropDTO: ToCropDTO(crop, now),
		Events:  events,
	}
}

// ToCropDTOs converts a crop slice against a single reference time
func ToCropDTOs(crops []models.Crop, now time.Time) []CropDTO {
	dtos := make([]CropDTO, len(crops))
	for i, crop := range crops {
		dtos[i] = ToCropDTO(crop, now)
	}
	return dtos
}

// displayLocation resolves the crop's place: subarea name first, then grow
// area name, then the unset marker.
func displayLocation(crop models.Crop) string {
	if crop.SubareaID != nil && crop.Subarea != nil {
		return crop.Subarea.Name
	}
	if crop.AreaID != nil && crop.Area != nil {
		return crop.Area.Name
	}
	return NoLocation
}
