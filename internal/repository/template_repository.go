package repository

import (
	"strings"

	"github.com/starkbrilliance/smartharvest/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Create creates a new crop template
func (r *GormTemplateRepository) Create(template *models.CropTemplate) error {
	return r.db.Create(template).Error
}

// FindByID finds a template by ID
func (r *GormTemplateRepository) FindByID(id string) (*models.CropTemplate, error) {
	var template models.CropTemplate
	if err := r.db.First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByNameAndVariety finds an exact match, case-insensitively
func (r *GormTemplateRepository) FindByNameAndVariety(name, variety string) (*models.CropTemplate, error) {
	var template models.CropTemplate
	if err := r.db.
		Where("LOWER(name) = ? AND LOWER(variety) = ?",
			strings.ToLower(name), strings.ToLower(variety)).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// List lists all templates
func (r *GormTemplateRepository) List() ([]models.CropTemplate, error) {
	var templates []models.CropTemplate
	if err := r.db.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Search matches a case-insensitive substring on name or variety
func (r *GormTemplateRepository) Search(query string) ([]models.CropTemplate, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var templates []models.CropTemplate
	if err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(variety) LIKE ?", pattern, pattern).
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Update updates a template
func (r *GormTemplateRepository) Update(template *models.CropTemplate) error {
	return r.db.Save(template).Error
}

// Delete hard deletes a template
func (r *GormTemplateRepository) Delete(id string) error {
	result := r.db.Delete(&models.CropTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
