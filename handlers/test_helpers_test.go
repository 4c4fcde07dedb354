package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"cabinet_avocat_go/config"
	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.Lawyer{},
		&models.Secretary{},
		&models.Admin{},
		&models.Client{},
		&models.Opponent{},
		&models.Case{},
		&models.CaseAttachment{},
		&models.CaseClientLink{},
		&models.CaseOpponentLink{},
		&models.Session{},
		&models.Appointment{},
		&models.Consultation{},
		&models.Payment{},
		&models.PaymentTransaction{},
		&models.Message{},
		&models.ActivityLog{},
		&models.CaseType{},
		&models.PasswordResetCode{},
	)
	assert.NoError(t, err)

	err = services.SeedCaseTypes(testDB)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		JWTSecret:     "test-secret-0123456789-0123456789",
		EmailTestMode: true,
	})

	return e, c, rec
}

// jsonBody marshals a request payload for setupEcho
func jsonBody(t *testing.T, payload interface{}) io.Reader {
	data, err := json.Marshal(payload)
	assert.NoError(t, err)
	return bytes.NewReader(data)
}

// decodeBody unmarshals a recorded JSON response
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

// actAsLawyer injects an authenticated lawyer into the request context the
// way the auth middleware would
func actAsLawyer(c echo.Context, lawyer *models.Lawyer) {
	c.Set(middleware.ContextKeyLawyer, lawyer)
	c.Set(middleware.ContextKeyRole, services.RoleAvocat)
}

// actAsAdmin injects an authenticated admin into the request context
func actAsAdmin(c echo.Context, admin *models.Admin) {
	c.Set(middleware.ContextKeyAdmin, admin)
	c.Set(middleware.ContextKeyRole, services.RoleAdmin)
}

func createTestLawyer(t *testing.T, database *gorm.DB, email string) *models.Lawyer {
	hashed, err := services.HashPassword("password123")
	assert.NoError(t, err)

	lawyer := &models.Lawyer{
		FirstName: "Nadia",
		LastName:  "Benali",
		Email:     email,
		Password:  hashed,
	}
	assert.NoError(t, database.Create(lawyer).Error)
	return lawyer
}

func createTestClient(t *testing.T, database *gorm.DB, lawyer *models.Lawyer, nationalID string) *models.Client {
	client := &models.Client{
		FirstName:  "Karim",
		LastName:   "Haddad",
		NationalID: nationalID,
		LawyerID:   lawyer.ID,
	}
	assert.NoError(t, database.Create(client).Error)
	return client
}

func floatPtr(f float64) *float64 {
	return &f
}

func stringPtr(s string) *string {
	return &s
}
