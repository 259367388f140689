package repository

import (
	"github.com/starkbrilliance/smartharvest/internal/models"
	"gorm.io/gorm"
)

// GormAreaRepository is a GORM implementation of AreaRepository
type GormAreaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new AreaRepository
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &GormAreaRepository{db: db}
}

// CreateGrowArea creates a new grow area
func (r *GormAreaRepository) CreateGrowArea(area *models.GrowArea) error {
	return r.db.Create(area).Error
}

// FindGrowAreaByID finds a grow area by ID
func (r *GormAreaRepository) FindGrowAreaByID(id string) (*models.GrowArea, error) {
	var area models.GrowArea
	if err := r.db.First(&area, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// ListGrowAreas lists all grow areas
func (r *GormAreaRepository) ListGrowAreas() ([]models.GrowArea, error) {
	var areas []models.GrowArea
	if err := r.db.Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// UpdateGrowArea updates a grow area
func (r *GormAreaRepository) UpdateGrowArea(area *models.GrowArea) error {
	return r.db.Save(area).Error
}

// DeleteGrowArea hard deletes a grow area
func (r *GormAreaRepository) DeleteGrowArea(id string) error {
	result := r.db.Delete(&models.GrowArea{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSubarea creates a new subarea
func (r *GormAreaRepository) CreateSubarea(subarea *models.Subarea) error {
	return r.db.Create(subarea).Error
}

// FindSubareaByID finds a subarea by ID
func (r *GormAreaRepository) FindSubareaByID(id string) (*models.Subarea, error) {
	var subarea models.Subarea
	if err := r.db.First(&subarea, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subarea, nil
}

// ListSubareas lists subareas belonging to a grow area
func (r *GormAreaRepository) ListSubareas(growAreaID string) ([]models.Subarea, error) {
	var subareas []models.Subarea
	if err := r.db.Where("grow_area_id = ?", growAreaID).Find(&subareas).Error; err != nil {
		return nil, err
	}
	return subareas, nil
}

// UpdateSubarea updates a subarea
func (r *GormAreaRepository) UpdateSubarea(subarea *models.Subarea) error {
	return r.db.Save(subarea).Error
}

// DeleteSubarea hard deletes a subarea
func (r *GormAreaRepository) DeleteSubarea(id string) error {
	result := r.db.Delete(&models.Subarea{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountSubareas counts subareas belonging to a grow area
func (r *GormAreaRepository) CountSubareas(growAreaID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subarea{}).
		Where("grow_area_id = ?", growAreaID).
		Count(&count).Error
	return count, err
}
