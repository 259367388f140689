package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGrowAreaNotFound = errors.New("grow area not found")
	ErrSubareaNotFound  = errors.New("subarea not found")
	ErrAreaNameRequired = errors.New("name is required")
	ErrGrowAreaInUse    = errors.New("grow area still has subareas or crops referencing it")
	ErrSubareaInUse     = errors.New("subarea still has crops referencing it")
)

// AreaService handles the grow area / subarea hierarchy. Deletion is guarded:
// an area or subarea that crops still reference is never removed.
type AreaService struct {
	areaRepo repository.AreaRepository
	cropRepo repository.CropRepository
}

// NewAreaService creates a new AreaService
func NewAreaService(areaRepo repository.AreaRepository, cropRepo repository.CropRepository) *AreaService {
	return &AreaService{
		areaRepo: areaRepo,
		cropRepo: cropRepo,
	}
}

// CreateGrowArea creates a grow area with a trimmed, non-empty name
func (s *AreaService) CreateGrowArea(name string) (*models.GrowArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAreaNameRequired
	}

	area := &models.GrowArea{Name: name}
	if err := s.areaRepo.CreateGrowArea(area); err != nil {
		return nil, fmt.Errorf("failed to create grow area: %w", err)
	}
	return area, nil
}

// ListGrowAreas lists all grow areas
func (s *AreaService) ListGrowAreas() ([]models.GrowArea, error) {
	return s.areaRepo.ListGrowAreas()
}

// GetGrowArea returns a grow area by ID
func (s *AreaService) GetGrowArea(id string) (*models.GrowArea, error) {
	area, err := s.areaRepo.FindGrowAreaByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrowAreaNotFound
		}
		return nil, fmt.Errorf("failed to find grow area: %w", err)
	}
	return area, nil
}

// RenameGrowArea updates a grow area's name
func (s *AreaService) RenameGrowArea(id, name string) (*models.GrowArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAreaNameRequired
	}

	area, err := s.GetGrowArea(id)
	if err != nil {
		return nil, err
	}

	area.Name = name
	if err := s.areaRepo.UpdateGrowArea(area); err != nil {
		return nil, fmt.Errorf("failed to update grow area: %w", err)
	}
	return area, nil
}

// DeleteGrowArea removes a grow area unless subareas or crops still
// reference it.
func (s *AreaService) DeleteGrowArea(id string) error {
	if _, err := s.GetGrowArea(id); err != nil {
		return err
	}

	subareaCount, err := s.areaRepo.CountSubareas(id)
	if err != nil {
		return fmt.Errorf("failed to count subareas: %w", err)
	}
	cropCount, err := s.cropRepo.CountByArea(id)
	if err != nil {
		return fmt.Errorf("failed to count crops: %w", err)
	}
	if subareaCount > 0 || cropCount > 0 {
		return ErrGrowAreaInUse
	}

	if err := s.areaRepo.DeleteGrowArea(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGrowAreaNotFound
		}
		return fmt.Errorf("failed to delete grow area: %w", err)
	}
	return nil
}

// CreateSubarea creates a subarea under an existing grow area
func (s *AreaService) CreateSubarea(growAreaID, name string) (*models.Subarea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAreaNameRequired
	}

	if _, err := s.GetGrowArea(growAreaID); err != nil {
		return nil, err
	}

	subarea := &models.Subarea{
		GrowAreaID: growAreaID,
		Name:       name,
	}
	if err := s.areaRepo.CreateSubarea(subarea); err != nil {
		return nil, fmt.Errorf("failed to create subarea: %w", err)
	}
	return subarea, nil
}

// ListSubareas lists the subareas belonging to a grow area
func (s *AreaService) ListSubareas(growAreaID string) ([]models.Subarea, error) {
	if _, err := s.GetGrowArea(growAreaID); err != nil {
		return nil, err
	}
	return s.areaRepo.ListSubareas(growAreaID)
}

// RenameSubarea updates a subarea's name
func (s *AreaService) RenameSubarea(id, name string) (*models.Subarea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAreaNameRequired
	}

	subarea, err := s.areaRepo.FindSubareaByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubareaNotFound
		}
		return nil, fmt.Errorf("failed to find subarea: %w", err)
	}

	subarea.Name = name
	if err := s.areaRepo.UpdateSubarea(subarea); err != nil {
		return nil, fmt.Errorf("failed to update subarea: %w", err)
	}
	return subarea, nil
}

// DeleteSubarea removes a subarea unless crops still reference it
func (s *AreaService) DeleteSubarea(id string) error {
	if _, err := s.areaRepo.FindSubareaByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubareaNotFound
		}
		return fmt.Errorf("failed to find subarea: %w", err)
	}

	cropCount, err := s.cropRepo.CountBySubarea(id)
	if err != nil {
		return fmt.Errorf("failed to count crops: %w", err)
	}
	if cropCount > 0 {
		return ErrSubareaInUse
	}

	if err := s.areaRepo.DeleteSubarea(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubareaNotFound
		}
		return fmt.Errorf("failed to delete subarea: %w", err)
	}
	return nil
}
