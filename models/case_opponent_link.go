package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseOpponentLink joins a case to one of its opponents.
type CaseOpponentLink struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID     string `gorm:"type:uuid;index;not null" json:"case_id"`
	OpponentID string `gorm:"type:uuid;index;not null" json:"opponent_id"`

	Opponent Opponent `gorm:"foreignKey:OpponentID" json:"opponent,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *CaseOpponentLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseOpponentLink model
func (CaseOpponentLink) TableName() string {
	return "case_opponent_links"
}
