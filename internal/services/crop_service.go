package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCropNotFound          = errors.New("crop not found")
	ErrCropNameRequired      = errors.New("crop name is required")
	ErrInvalidStatus         = errors.New("invalid crop status")
	ErrInvalidEventType      = errors.New("invalid event type")
	ErrHarvestBeforePlanting = errors.New("expected harvest date must not precede the planted date")
	ErrInvalidFrequency      = errors.New("invalid maintenance frequency")
	ErrInvalidMaintenance    = errors.New("invalid maintenance entry")
	ErrLocationMismatch      = errors.New("subarea does not belong to the given grow area")
	ErrEventDateRequired     = errors.New("event date is required")
)

// CropService handles crop lifecycle business logic
type CropService struct {
	cropRepo  repository.CropRepository
	areaRepo  repository.AreaRepository
	eventRepo repository.EventRepository
}

// NewCropService creates a new CropService
func NewCropService(cropRepo repository.CropRepository, areaRepo repository.AreaRepository, eventRepo repository.EventRepository) *CropService {
	return &CropService{
		cropRepo:  cropRepo,
		areaRepo:  areaRepo,
		eventRepo: eventRepo,
	}
}

// CreateCropInput represents input for creating a crop
type CreateCropInput struct {
	Name                string
	Variety             string
	SubareaID           *string
	AreaID              *string
	PlantedDate         time.Time
	ExpectedHarvestDate time.Time
	Status              models.CropStatus
	Notes               string
	ImageURL            string
	MaintenanceSchedule []models.MaintenanceEntry
}

// UpdateCropInput represents a partial update; nil fields are left untouched
type UpdateCropInput struct {
	Name                *string
	Variety             *string
	SubareaID           *string
	ClearSubarea        bool
	AreaID              *string
	ClearArea           bool
	PlantedDate         *time.Time
	ExpectedHarvestDate *time.Time
	Status              *models.CropStatus
	Notes               *string
	ImageURL            *string
	MaintenanceSchedule []models.MaintenanceEntry
	SetMaintenance      bool
}

// CreateCrop validates and persists a new crop. Status defaults to growing.
func (s *CropService) CreateCrop(input CreateCropInput) (*models.Crop, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCropNameRequired
	}

	status := input.Status
	if status == "" {
		status = models.CropStatusGrowing
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if input.ExpectedHarvestDate.Before(input.PlantedDate) {
		return nil, ErrHarvestBeforePlanting
	}

	if err := validateMaintenanceSchedule(input.MaintenanceSchedule); err != nil {
		return nil, err
	}

	if err := s.checkLocation(input.SubareaID, input.AreaID); err != nil {
		return nil, err
	}

	crop := &models.Crop{
		Name:                name,
		Variety:             strings.TrimSpace(input.Variety),
		SubareaID:           input.SubareaID,
		AreaID:              input.AreaID,
		PlantedDate:         input.PlantedDate,
		ExpectedHarvestDate: input.ExpectedHarvestDate,
		Status:              status,
		Notes:               input.Notes,
		ImageURL:            input.ImageURL,
		IsActive:            true,
		MaintenanceSchedule: input.MaintenanceSchedule,
	}

	if err := s.cropRepo.Create(crop); err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}

	return crop, nil
}

// ListCrops returns active crops, newest first
func (s *CropService) ListCrops(params repository.ListParams) ([]models.Crop, int64, error) {
	return s.cropRepo.List(params)
}

// GetCrop returns a crop by ID with its events, including soft-deleted crops
func (s *CropService) GetCrop(id string) (*models.Crop, error) {
	crop, err := s.cropRepo.FindByID(id, "Subarea", "Area")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to find crop: %w", err)
	}

	events, err := s.eventRepo.ListByCropID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	crop.Events = events

	return crop, nil
}

// UpdateCrop applies a partial update. Status changes are permissive: any
// valid label may replace any other.
func (s *CropService) UpdateCrop(id string, input UpdateCropInput) (*models.Crop, error) {
	crop, err := s.cropRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to find crop: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrCropNameRequired
		}
		crop.Name = name
	}
	if input.Variety != nil {
		crop.Variety = strings.TrimSpace(*input.Variety)
	}
	if input.ClearSubarea {
		crop.SubareaID = nil
	} else if input.SubareaID != nil {
		crop.SubareaID = input.SubareaID
	}
	if input.ClearArea {
		crop.AreaID = nil
	} else if input.AreaID != nil {
		crop.AreaID = input.AreaID
	}
	if input.PlantedDate != nil {
		crop.PlantedDate = *input.PlantedDate
	}
	if input.ExpectedHarvestDate != nil {
		crop.ExpectedHarvestDate = *input.ExpectedHarvestDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		crop.Status = *input.Status
	}
	if input.Notes != nil {
		crop.Notes = *input.Notes
	}
	if input.ImageURL != nil {
		crop.ImageURL = *input.ImageURL
	}
	if input.SetMaintenance {
		if err := validateMaintenanceSchedule(input.MaintenanceSchedule); err != nil {
			return nil, err
		}
		crop.MaintenanceSchedule = input.MaintenanceSchedule
	}

	if crop.ExpectedHarvestDate.Before(crop.PlantedDate) {
		return nil, ErrHarvestBeforePlanting
	}
	if err := s.checkLocation(crop.SubareaID, crop.AreaID); err != nil {
		return nil, err
	}

	if err := s.cropRepo.Update(crop); err != nil {
		return nil, fmt.Errorf("failed to update crop: %w", err)
	}

	return crop, nil
}

// Harvest is the one privileged transition: it couples status = harvested
// with the actual harvest timestamp. Calling it again is a no-op.
func (s *CropService) Harvest(id string) (*models.Crop, error) {
	crop, err := s.cropRepo.Harvest(id, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to harvest crop: %w", err)
	}
	return crop, nil
}

// DeleteCrop soft deletes a crop. The record and its events stay addressable
// by direct ID lookup.
func (s *CropService) DeleteCrop(id string) error {
	if err := s.cropRepo.Deactivate(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCropNotFound
		}
		return fmt.Errorf("failed to delete crop: %w", err)
	}
	return nil
}

// ListEvents lists the event log for a crop, newest first
func (s *CropService) ListEvents(cropID string) ([]models.Event, error) {
	if _, err := s.cropRepo.FindByID(cropID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to find crop: %w", err)
	}
	return s.eventRepo.ListByCropID(cropID)
}

// CreateEventInput represents input for logging an event
type CreateEventInput struct {
	CropID    string
	Type      models.EventType
	Notes     string
	EventDate time.Time
}

// CreateEvent appends an immutable event to a crop's log. Past and future
// event dates are both accepted.
func (s *CropService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidEventType
	}
	if input.EventDate.IsZero() {
		return nil, ErrEventDateRequired
	}

	if _, err := s.cropRepo.FindByID(input.CropID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to find crop: %w", err)
	}

	event := &models.Event{
		CropID:    input.CropID,
		Type:      input.Type,
		Notes:     input.Notes,
		EventDate: input.EventDate,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// Stats aggregates the dashboard counters
func (s *CropService) Stats() (repository.CropStats, error) {
	return s.cropRepo.Stats(time.Now())
}

// checkLocation validates the optional area/subarea references and their
// consistency: when both are set, the subarea must belong to that area.
func (s *CropService) checkLocation(subareaID, areaID *string) error {
	var subarea *models.Subarea

	if subareaID != nil && *subareaID != "" {
		found, err := s.areaRepo.FindSubareaByID(*subareaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubareaNotFound
			}
			return fmt.Errorf("failed to find subarea: %w", err)
		}
		subarea = found
	}

	if areaID != nil && *areaID != "" {
		if _, err := s.areaRepo.FindGrowAreaByID(*areaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGrowAreaNotFound
			}
			return fmt.Errorf("failed to find grow area: %w", err)
		}
		if subarea != nil && subarea.GrowAreaID != *areaID {
			return ErrLocationMismatch
		}
	}

	return nil
}

func validateMaintenanceSchedule(entries []models.MaintenanceEntry) error {
	for _, entry := range entries {
		if !models.MaintenanceEventTypes[entry.EventType] {
			return fmt.Errorf("%w: unknown event type %q", ErrInvalidMaintenance, entry.EventType)
		}
		if !entry.Frequency.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidFrequency, entry.Frequency)
		}
		if entry.StartDate.IsZero() || entry.EndDate.IsZero() {
			return fmt.Errorf("%w: start and end dates are required", ErrInvalidMaintenance)
		}
		if entry.EndDate.Before(entry.StartDate) {
			return fmt.Errorf("%w: end date precedes start date", ErrInvalidMaintenance)
		}
	}
	return nil
}
