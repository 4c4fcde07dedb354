package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetCode is a one-time code emailed during password reset.
// Persisting the code (instead of holding it in process memory) keeps reset
// flows working across restarts and multi-process deployments.
type PasswordResetCode struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Email     string    `gorm:"size:255;index;not null" json:"email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// BeforeCreate hook to generate UUID
func (c *PasswordResetCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for PasswordResetCode model
func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}

// IsExpired checks if the code has expired
func (c *PasswordResetCode) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
