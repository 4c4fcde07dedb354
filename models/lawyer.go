package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lawyer is the primary account owner. Every client, case, session,
// appointment, consultation and payment is scoped to exactly one lawyer.
type Lawyer struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Phone     string `gorm:"size:30" json:"phone"`
	Address   string `gorm:"size:255" json:"address"`
	City      string `gorm:"size:100" json:"city"`
	Specialty string `gorm:"size:150" json:"specialty"`
	FirmName  string `gorm:"size:150" json:"firm_name"`

	// Logo stored in the media store
	LogoURL string `gorm:"size:500" json:"logo_url"`
	LogoKey string `gorm:"size:500" json:"-"`
}

// BeforeCreate hook to generate UUID
func (l *Lawyer) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Lawyer model
func (Lawyer) TableName() string {
	return "lawyers"
}

// FullName returns the lawyer's display name
func (l *Lawyer) FullName() string {
	return l.FirstName + " " + l.LastName
}
