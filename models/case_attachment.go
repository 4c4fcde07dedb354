package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment kind constants. The kind is recorded at upload time so that
// downloads never have to guess the remote resource type.
const (
	AttachmentKindImage = "image"
	AttachmentKindVideo = "video"
	AttachmentKindRaw   = "raw"
)

// CaseAttachment is a file stored in the media store under the case's folder.
type CaseAttachment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID string `gorm:"type:uuid;index;not null" json:"case_id"`

	Name       string `gorm:"size:255;not null" json:"name"`
	URL        string `gorm:"size:500;not null" json:"url"`
	StorageKey string `gorm:"size:500;not null" json:"-"`
	Kind       string `gorm:"size:10;not null;default:raw" json:"kind"`
}

// BeforeCreate hook to generate UUID
func (a *CaseAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseAttachment model
func (CaseAttachment) TableName() string {
	return "case_attachments"
}

// AttachmentKindForExt maps a file extension (with leading dot) to a kind
func AttachmentKindForExt(ext string) string {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return AttachmentKindImage
	case ".mp4", ".mov", ".avi", ".mkv", ".webm":
		return AttachmentKindVideo
	default:
		return AttachmentKindRaw
	}
}
