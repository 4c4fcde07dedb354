package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction type constants
const (
	TransactionTypePayment = "payment"
	TransactionTypeAdvance = "advance"
)

// PaymentTransaction is a single movement against a Payment, with an
// optional receipt reference.
type PaymentTransaction struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PaymentID string  `gorm:"type:uuid;index;not null" json:"payment_id"`
	Payment   Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`

	Amount          float64 `gorm:"not null" json:"amount"`
	Mode            string  `gorm:"size:20;not null;default:cash" json:"mode"`
	TransactionType string  `gorm:"size:20;not null;default:payment" json:"transaction_type"`
	ReceiptRef      string  `gorm:"size:100" json:"receipt_ref"`
}

// BeforeCreate hook to generate UUID
func (t *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for PaymentTransaction model
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(t string) bool {
	return t == TransactionTypePayment || t == TransactionTypeAdvance
}
