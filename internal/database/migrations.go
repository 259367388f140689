package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Crop indexes for listing and lookup
		{"crops", "idx_crops_is_active", "is_active"},
		{"crops", "idx_crops_created_at", "created_at"},
		{"crops", "idx_crops_status", "status"},
		{"crops", "idx_crops_expected_harvest_date", "expected_harvest_date"},

		// Event history per crop, newest first
		{"events", "idx_events_crop_id", "crop_id"},
		{"events", "idx_events_event_date", "event_date"},

		// Hierarchy lookups
		{"subareas", "idx_subareas_grow_area_id", "grow_area_id"},

		// Session token lookup on every authenticated request
		{"sessions", "idx_sessions_session_token", "session_token"},

		// Template lookup by (name, variety)
		{"crop_templates", "idx_crop_templates_name_variety", "name, variety"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
