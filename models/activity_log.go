package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogRetention is how many recent entries are kept. Every admin
// mutation appends a row, then rows beyond this window are purged.
const ActivityLogRetention = 6

// ActivityLog records an admin-initiated mutation.
type ActivityLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Action  string `gorm:"size:100;not null" json:"action"`
	Details string `gorm:"type:text" json:"details"`
}

// BeforeCreate hook to generate UUID
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}
