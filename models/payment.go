package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment mode constants
const (
	PaymentModeCheck = "check"
	PaymentModeCash  = "cash"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPartial  = "partial"
	PaymentStatusComplete = "complete"
)

// Payment tracks what a client owes and has paid, optionally against a case
// or a consultation. Case totals are aggregated at read time and never
// stored on the case itself.
type Payment struct {
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

	ConsultationID *string       `gorm:"type:uuid;index" json:"consultation_id,omitempty"`
	Consultation   *Consultation `gorm:"foreignKey:ConsultationID" json:"consultation,omitempty"`

	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	PaidAmount  float64 `gorm:"not null;default:0" json:"paid_amount"`
	PaymentMode string  `gorm:"size:20;not null;default:cash" json:"payment_mode"`
	Status      string  `gorm:"size:20;not null;default:pending" json:"status"`
}

// BeforeCreate hook to generate UUID
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// IsValidPaymentMode checks if the payment mode is valid
func IsValidPaymentMode(mode string) bool {
	return mode == PaymentModeCheck || mode == PaymentModeCash
}
