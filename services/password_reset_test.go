package services

import (
	"testing"
	"time"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateResetCode(t *testing.T) {
	db := setupTestDB(t)
	lawyer, _ := createLawyerAndClient(t, db, "otp@test.com")

	t.Run("Creates a persisted six-digit code", func(t *testing.T) {
		code, owner, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)
		assert.NotNil(t, code)
		assert.Equal(t, lawyer.ID, owner.ID)
		assert.Len(t, code.Code, ResetCodeLength)
		assert.False(t, code.IsExpired())
	})

	t.Run("A new request replaces the pending code", func(t *testing.T) {
		first, _, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)
		second, _, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)

		var count int64
		db.Model(&models.PasswordResetCode{}).Where("email = ?", lawyer.Email).Count(&count)
		assert.Equal(t, int64(1), count)

		var remaining models.PasswordResetCode
		assert.NoError(t, db.First(&remaining, "email = ?", lawyer.Email).Error)
		assert.Equal(t, second.ID, remaining.ID)
		assert.NotEqual(t, first.ID, remaining.ID)
	})

	t.Run("Unknown email returns nothing, no error", func(t *testing.T) {
		code, owner, err := GenerateResetCode(db, "nobody@test.com")
		assert.NoError(t, err)
		assert.Nil(t, code)
		assert.Nil(t, owner)
	})
}

func TestResetPassword(t *testing.T) {
	db := setupTestDB(t)
	lawyer, _ := createLawyerAndClient(t, db, "otp-reset@test.com")
	hashed, err := HashPassword("old-password-1")
	assert.NoError(t, err)
	assert.NoError(t, db.Model(lawyer).Update("password", hashed).Error)

	t.Run("Valid code updates the hash and burns the code", func(t *testing.T) {
		code, _, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)

		assert.NoError(t, ResetPassword(db, lawyer.Email, code.Code, "new-password-1"))

		var updated models.Lawyer
		assert.NoError(t, db.First(&updated, "id = ?", lawyer.ID).Error)
		assert.True(t, CheckPassword("new-password-1", updated.Password))

		var count int64
		db.Model(&models.PasswordResetCode{}).Where("email = ?", lawyer.Email).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Wrong code rejected", func(t *testing.T) {
		_, _, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)

		assert.Error(t, ResetPassword(db, lawyer.Email, "999999", "whatever-pass"))
	})

	t.Run("Expired code rejected and removed", func(t *testing.T) {
		code, _, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)

		assert.NoError(t, db.Model(code).Update("expires_at", time.Now().Add(-time.Minute)).Error)

		assert.Error(t, ResetPassword(db, lawyer.Email, code.Code, "whatever-pass"))

		var count int64
		db.Model(&models.PasswordResetCode{}).Where("email = ?", lawyer.Email).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Short password rejected", func(t *testing.T) {
		code, _, err := GenerateResetCode(db, lawyer.Email)
		assert.NoError(t, err)

		assert.Error(t, ResetPassword(db, lawyer.Email, code.Code, "short"))
	})
}

func TestCleanupExpiredResetCodes(t *testing.T) {
	db := setupTestDB(t)

	expired := &models.PasswordResetCode{Email: "a@test.com", Code: "111111", ExpiresAt: time.Now().Add(-time.Hour)}
	fresh := &models.PasswordResetCode{Email: "b@test.com", Code: "222222", ExpiresAt: time.Now().Add(time.Hour)}
	assert.NoError(t, db.Create(expired).Error)
	assert.NoError(t, db.Create(fresh).Error)

	assert.NoError(t, CleanupExpiredResetCodes(db))

	var remaining []models.PasswordResetCode
	assert.NoError(t, db.Find(&remaining).Error)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "b@test.com", remaining[0].Email)
}
