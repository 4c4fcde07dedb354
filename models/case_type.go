package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseType is a taxonomy node: a case category and its sub-type names.
// The collection is seeded at startup and is the single source of truth for
// case category/type validation.
type CaseType struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	// Sub-type names, pipe-separated in storage
	SubTypes string `gorm:"type:text" json:"-"`
}

// BeforeCreate hook to generate UUID
func (t *CaseType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseType model
func (CaseType) TableName() string {
	return "case_types"
}

// SubTypeList returns the sub-type names as a slice
func (t *CaseType) SubTypeList() []string {
	if t.SubTypes == "" {
		return nil
	}
	return strings.Split(t.SubTypes, "|")
}

// SetSubTypes stores the sub-type names
func (t *CaseType) SetSubTypes(names []string) {
	t.SubTypes = strings.Join(names, "|")
}

// HasSubType checks whether a sub-type name belongs to this category
func (t *CaseType) HasSubType(name string) bool {
	for _, s := range t.SubTypeList() {
		if s == name {
			return true
		}
	}
	return false
}
