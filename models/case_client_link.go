package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseClientLink joins a case to one of its clients.
type CaseClientLink struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID   string `gorm:"type:uuid;index;not null" json:"case_id"`
	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`

	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *CaseClientLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseClientLink model
func (CaseClientLink) TableName() string {
	return "case_client_links"
}
