package services

import (
	"testing"

	"cabinet_avocat_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Lawyer{},
		&models.Client{},
		&models.Case{},
		&models.Session{},
		&models.Appointment{},
		&models.Consultation{},
		&models.Payment{},
		&models.PaymentTransaction{},
		&models.ActivityLog{},
		&models.CaseType{},
		&models.PasswordResetCode{},
	)
	assert.NoError(t, err)

	return testDB
}

func createLawyerAndClient(t *testing.T, db *gorm.DB, email string) (*models.Lawyer, *models.Client) {
	lawyer := &models.Lawyer{FirstName: "Sami", LastName: "Toumi", Email: email, Password: "x"}
	assert.NoError(t, db.Create(lawyer).Error)

	client := &models.Client{
		FirstName:  "Omar",
		LastName:   "Belkacem",
		NationalID: "SVC-" + uuid.New().String()[:8],
		LawyerID:   lawyer.ID,
	}
	assert.NoError(t, db.Create(client).Error)

	return lawyer, client
}
