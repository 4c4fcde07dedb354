package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a person represented by a lawyer. The national ID is unique
// across the platform; a client belongs to exactly one lawyer and is linked
// to cases through CaseClientLink rows.
type Client struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirstName  string `gorm:"size:100;not null" json:"first_name"`
	LastName   string `gorm:"size:100;not null" json:"last_name"`
	NationalID string `gorm:"size:50;uniqueIndex;not null" json:"national_id"`
	Phone      string `gorm:"size:30" json:"phone"`
	Phone2     string `gorm:"size:30" json:"phone2"`
	Address    string `gorm:"size:255" json:"address"`
	Address2   string `gorm:"size:255" json:"address2"`

	LawyerID string `gorm:"type:uuid;index;not null" json:"lawyer_id"`
	Lawyer   Lawyer `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
