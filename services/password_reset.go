package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"cabinet_avocat_go/models"

	"gorm.io/gorm"
)

const (
	// ResetCodeLength is the number of digits in a reset code
	ResetCodeLength = 6
	// ResetCodeExpiration is how long a reset code is valid
	ResetCodeExpiration = 15 * time.Minute
)

// GenerateResetCode creates and persists a one-time password reset code for
// a lawyer account. Returns nil without error for unknown emails so the
// endpoint does not leak which addresses exist.
func GenerateResetCode(db *gorm.DB, email string) (*models.PasswordResetCode, *models.Lawyer, error) {
	var lawyer models.Lawyer
	if err := db.Where("email = ?", email).First(&lawyer).Error; err != nil {
		log.Printf("Password reset requested for non-existent email: %s", email)
		return nil, nil, nil
	}

	// Replace any code still pending for this email
	db.Where("email = ?", email).Delete(&models.PasswordResetCode{})

	code, err := randomDigits(ResetCodeLength)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate reset code: %w", err)
	}

	resetCode := &models.PasswordResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(ResetCodeExpiration),
	}

	if err := db.Create(resetCode).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create reset code: %w", err)
	}

	return resetCode, &lawyer, nil
}

// ResetPassword verifies a reset code and updates the lawyer's password
func ResetPassword(db *gorm.DB, email, code, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	var resetCode models.PasswordResetCode
	if err := db.Where("email = ? AND code = ?", email, code).First(&resetCode).Error; err != nil {
		return fmt.Errorf("invalid or expired code")
	}

	if resetCode.IsExpired() {
		db.Delete(&resetCode)
		return fmt.Errorf("code has expired")
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Lawyer{}).Where("email = ?", email).
		Update("password", hashedPassword).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := tx.Delete(&resetCode).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete reset code: %w", err)
	}

	return tx.Commit().Error
}

// CleanupExpiredResetCodes deletes all expired password reset codes
func CleanupExpiredResetCodes(db *gorm.DB) error {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordResetCode{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d expired password reset codes", result.RowsAffected)
	}

	return nil
}

// randomDigits returns a cryptographically random numeric string
func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
