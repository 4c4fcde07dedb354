package services

import (
	"fmt"
	"mime/multipart"
)

const (
	// MaxUploadSize is the per-file size ceiling (10 MB)
	MaxUploadSize = 10 << 20
	// MaxAttachmentsPerRequest bounds how many files one request may carry
	MaxAttachmentsPerRequest = 5
)

// allowedLogoMimeTypes is the allow-list for lawyer logo uploads
var allowedLogoMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// ValidateLogoUpload checks a logo file against the image allow-list and
// size ceiling
func ValidateLogoUpload(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file exceeds the %d MB limit", MaxUploadSize>>20)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedLogoMimeTypes[contentType] {
		return fmt.Errorf("unsupported file type %q, expected an image", contentType)
	}

	return nil
}

// ValidateAttachmentUpload checks a case attachment file. Attachments
// accept any type but stay under the size ceiling.
func ValidateAttachmentUpload(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file %q exceeds the %d MB limit", file.Filename, MaxUploadSize>>20)
	}
	return nil
}
