package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment type constants
const (
	AppointmentTypeConsultation = "consultation"
	AppointmentTypeMeeting      = "meeting" // Requires a case reference
)

// Appointment status constants
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

// Recurrence frequency constants
const (
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Appointment (rendez-vous) is a scheduled consultation or client meeting,
// possibly recurring. Same date/time encoding as Session.
type Appointment struct {
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

	Type        string `gorm:"size:20;not null;default:consultation" json:"type"`
	Status      string `gorm:"size:20;not null;default:scheduled" json:"status"`
	Description string `gorm:"type:text" json:"description"`

	// JSON-encoded {notes, location}
	Notes string `gorm:"type:text" json:"notes"`

	// Optional recurrence
	RecurrenceFrequency string  `gorm:"size:20" json:"recurrence_frequency"`
	RecurrenceEndDate   *string `gorm:"size:10" json:"recurrence_end_date,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// IsValidAppointmentType checks if the appointment type is valid
func IsValidAppointmentType(t string) bool {
	return t == AppointmentTypeConsultation || t == AppointmentTypeMeeting
}

// IsValidAppointmentStatus checks if the status is valid
func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// IsValidRecurrenceFrequency checks if the recurrence frequency is valid
func IsValidRecurrenceFrequency(freq string) bool {
	return freq == RecurrenceWeekly || freq == RecurrenceMonthly
}
