package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consultation status constants
const (
	ConsultationStatusScheduled = "scheduled"
	ConsultationStatusDone      = "done"
	ConsultationStatusCancelled = "cancelled"
)

// Consultation is a billable advisory meeting. Same date/time encoding as
// Session.
type Consultation struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LawyerID string `gorm:"type:uuid;index;not null" json:"lawyer_id"`
	Lawyer   Lawyer `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	CaseID *string `gorm:"type:uuid;index" json:"case_id,omitempty"`
	Case   *Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:scheduled" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	Amount      *float64 `json:"amount,omitempty"`
	PaymentMode string   `gorm:"size:20" json:"payment_mode"`
}

// BeforeCreate hook to generate UUID
func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Consultation model
func (Consultation) TableName() string {
	return "consultations"
}

// IsValidConsultationStatus checks if the status is valid
func IsValidConsultationStatus(status string) bool {
	switch status {
	case ConsultationStatusScheduled, ConsultationStatusDone, ConsultationStatusCancelled:
		return true
	}
	return false
}
