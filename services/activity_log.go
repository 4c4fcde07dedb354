package services

import (
	"log"

	"cabinet_avocat_go/models"

	"gorm.io/gorm"
)

// RecordActivity appends an activity log row for an admin mutation, then
// trims the log to the retention window. The append and the trim are two
// sequential queries; a burst of concurrent admin actions can transiently
// exceed the window. Known limitation.
func RecordActivity(db *gorm.DB, action, details string) {
	entry := models.ActivityLog{Action: action, Details: details}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[ACTIVITY] Failed to record %q: %v", action, err)
		return
	}

	if err := TrimActivityLog(db); err != nil {
		log.Printf("[ACTIVITY] Failed to trim log: %v", err)
	}
}

// TrimActivityLog deletes the oldest rows beyond the retention window
func TrimActivityLog(db *gorm.DB) error {
	var keep []string
	err := db.Model(&models.ActivityLog{}).
		Order("created_at DESC").
		Limit(models.ActivityLogRetention).
		Pluck("id", &keep).Error
	if err != nil {
		return err
	}

	if len(keep) < models.ActivityLogRetention {
		return nil
	}

	return db.Where("id NOT IN ?", keep).Delete(&models.ActivityLog{}).Error
}

// GetRecentActivity returns the retained activity log entries, newest first
func GetRecentActivity(db *gorm.DB) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := db.Order("created_at DESC").
		Limit(models.ActivityLogRetention).
		Find(&entries).Error
	return entries, err
}
