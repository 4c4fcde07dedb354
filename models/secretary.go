package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Secretary is a staff account attached to exactly one lawyer. A secretary
// authenticates with their own credentials but operates inside the owning
// lawyer's scope.
type Secretary struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Phone     string `gorm:"size:30" json:"phone"`

	LawyerID string `gorm:"type:uuid;index;not null" json:"lawyer_id"`
	Lawyer   Lawyer `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`
}

// BeforeCreate hook to generate UUID
func (s *Secretary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Secretary model
func (Secretary) TableName() string {
	return "secretaries"
}
