package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOngoing  = "ongoing"
	CaseStatusClosed   = "closed"
	CaseStatusArchived = "archived"
)

// Client role constants (role of the client in the case)
const (
	ClientRoleDemandeur = "demandeur" // Plaintiff - initiates the legal action
	ClientRoleDefendeur = "défendeur" // Defendant - responds to the legal action
)

// Case level constants
const (
	CaseLevelPrimary = "primary"
	CaseLevelAppeal  = "appeal"
)

// Fee type constants
const (
	FeeTypeComprehensive = "comprehensive" // Lawyer fees plus case expenses
	FeeTypeLawyerOnly    = "lawyer_only"   // Lawyer fees only
)

// Case (affaire) is the central business object: a legal matter tracked for
// a client against an opponent.
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Ownership
	LawyerID string `gorm:"type:uuid;index;not null" json:"lawyer_id"`
	Lawyer   Lawyer `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	// Primary client (additional clients go through CaseClientLink)
	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Identification
	CaseNumber string `gorm:"size:100;index" json:"case_number"`
	Title      string `gorm:"size:255" json:"title"`

	// Taxonomy (validated against the case_types collection)
	Category string `gorm:"size:100;not null" json:"category"`
	CaseType string `gorm:"size:100;not null" json:"case_type"`

	// Role of the client in the case (demandeur/défendeur). A defendant role
	// requires a case number since the matter already exists in court.
	ClientRole string `gorm:"size:20;not null" json:"client_role"`

	// Case level. An appeal requires the primary case number it appeals.
	CaseLevel         string `gorm:"size:20;default:primary" json:"case_level"`
	PrimaryCaseNumber string `gorm:"size:100" json:"primary_case_number"`

	// Adverse party, free text (structured opponents go through CaseOpponentLink)
	OpponentName string `gorm:"size:200" json:"opponent_name"`

	// Billing. Comprehensive fees require the expected case expenses.
	FeeType      string   `gorm:"size:20;default:lawyer_only" json:"fee_type"`
	LawyerFees   float64  `gorm:"default:0" json:"lawyer_fees"`
	CaseExpenses *float64 `json:"case_expenses,omitempty"`

	// Lifecycle
	Status string `gorm:"size:20;not null;default:ongoing;index" json:"status"`

	// Archive is a soft transition distinct from hard delete
	IsArchived     bool       `gorm:"not null;default:false;index" json:"is_archived"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	ArchiveRemarks string     `gorm:"type:text" json:"archive_remarks"`

	// Relationships
	Attachments []CaseAttachment `gorm:"foreignKey:CaseID" json:"attachments,omitempty"`
	ClientLinks []CaseClientLink `gorm:"foreignKey:CaseID" json:"client_links,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	return status == CaseStatusOngoing || status == CaseStatusClosed || status == CaseStatusArchived
}

// IsValidClientRole checks if the client role is valid
func IsValidClientRole(role string) bool {
	return role == ClientRoleDemandeur || role == ClientRoleDefendeur
}

// IsValidCaseLevel checks if the case level is valid
func IsValidCaseLevel(level string) bool {
	return level == CaseLevelPrimary || level == CaseLevelAppeal
}

// IsValidFeeType checks if the fee type is valid
func IsValidFeeType(feeType string) bool {
	return feeType == FeeTypeComprehensive || feeType == FeeTypeLawyerOnly
}

// Validate enforces the cross-field invariants of a case
func (c *Case) Validate() error {
	if c.ClientRole == ClientRoleDefendeur && c.CaseNumber == "" {
		return ErrDefendantRequiresCaseNumber
	}
	if c.CaseLevel == CaseLevelAppeal && c.PrimaryCaseNumber == "" {
		return ErrAppealRequiresPrimaryNumber
	}
	if c.FeeType == FeeTypeComprehensive && c.CaseExpenses == nil {
		return ErrComprehensiveRequiresExpenses
	}
	return nil
}
