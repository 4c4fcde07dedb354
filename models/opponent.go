package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Opponent is the adverse party in a case, linked through CaseOpponentLink.
type Opponent struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name       string `gorm:"size:200;not null" json:"name"`
	NationalID string `gorm:"size:50;uniqueIndex" json:"national_id"`
	Phone      string `gorm:"size:30" json:"phone"`
	Address    string `gorm:"size:255" json:"address"`
}

// BeforeCreate hook to generate UUID
func (o *Opponent) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Opponent model
func (Opponent) TableName() string {
	return "opponents"
}
