package repository

import (
	"time"

	"github.com/starkbrilliance/smartharvest/internal/database"
	"github.com/starkbrilliance/smartharvest/internal/models"
	"gorm.io/gorm"
)

// GormCropRepository is a GORM implementation of CropRepository
type GormCropRepository struct {
	db *gorm.DB
}

// NewCropRepository creates a new CropRepository
func NewCropRepository(db *gorm.DB) CropRepository {
	return &GormCropRepository{db: db}
}

// Create creates a new crop
func (r *GormCropRepository) Create(crop *models.Crop) error {
	return r.db.Create(crop).Error
}

// FindByID finds a crop by ID with optional preloading. Soft-deleted crops
// remain addressable here so historical event references keep working.
func (r *GormCropRepository) FindByID(id string, preload ...string) (*models.Crop, error) {
	var crop models.Crop
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&crop, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &crop, nil
}

// List retrieves active crops, newest first
func (r *GormCropRepository) List(params ListParams) ([]models.Crop, int64, error) {
	var crops []models.Crop

	query := r.db.Model(&models.Crop{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC").
		Scopes(database.Paginate(params.Offset, params.Limit))

	if err := listQuery.Preload("Subarea").Preload("Area").Find(&crops).Error; err != nil {
		return nil, 0, err
	}

	return crops, total, nil
}

// Update updates a crop
func (r *GormCropRepository) Update(crop *models.Crop) error {
	return r.db.Save(crop).Error
}

// Harvest marks a crop harvested inside a transaction so the status and
// timestamp change together. An already-harvested crop is returned as is.
func (r *GormCropRepository) Harvest(id string, now time.Time) (*models.Crop, error) {
	var crop models.Crop
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&crop, "id = ?", id).Error; err != nil {
			return err
		}

		if crop.Status == models.CropStatusHarvested && crop.ActualHarvestDate != nil {
			return nil
		}

		crop.Status = models.CropStatusHarvested
		if crop.ActualHarvestDate == nil {
			harvestedAt := now
			crop.ActualHarvestDate = &harvestedAt
		}

		return tx.Model(&models.Crop{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":              crop.Status,
				"actual_harvest_date": crop.ActualHarvestDate,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &crop, nil
}

// Deactivate soft deletes a crop
func (r *GormCropRepository) Deactivate(id string) error {
	result := r.db.Model(&models.Crop{}).Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountBySubarea counts active crops referencing a subarea
func (r *GormCropRepository) CountBySubarea(subareaID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Crop{}).
		Where("subarea_id = ? AND is_active = ?", subareaID, true).
		Count(&count).Error
	return count, err
}

// CountByArea counts active crops referencing a grow area directly
func (r *GormCropRepository) CountByArea(areaID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Crop{}).
		Where("area_id = ? AND is_active = ?", areaID, true).
		Count(&count).Error
	return count, err
}

// Stats aggregates the dashboard counters over active crops
func (r *GormCropRepository) Stats(now time.Time) (CropStats, error) {
	var stats CropStats

	active := r.db.Model(&models.Crop{}).Where("is_active = ?", true)
	if err := active.Count(&stats.Active).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&models.Crop{}).
		Where("is_active = ? AND status = ?", true, models.CropStatusReady).
		Count(&stats.Ready).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&models.Crop{}).
		Where("is_active = ? AND status <> ? AND expected_harvest_date <= ?",
			true, models.CropStatusHarvested, now).
		Count(&stats.Overdue).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&models.Crop{}).
		Where("is_active = ? AND status = ?", true, models.CropStatusHarvested).
		Count(&stats.Harvested).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
