package handlers

import (
	"net/http"
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCaseInvariants(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "cases@test.com")
	client := createTestClient(t, database, lawyer, "AB123456")

	t.Run("Defendant without case number rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id":   client.ID,
			"category":    "civil",
			"case_type":   "contract",
			"client_role": models.ClientRoleDefendeur,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Defendant with case number accepted", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id":   client.ID,
			"category":    "civil",
			"case_type":   "contract",
			"client_role": models.ClientRoleDefendeur,
			"case_number": "2026/451",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created caseResponse
		decodeBody(t, rec, &created)
		assert.Equal(t, models.ClientRoleDefendeur, created.ClientRole)

		// The primary client link is written alongside the case
		var links int64
		database.Model(&models.CaseClientLink{}).Where("case_id = ?", created.ID).Count(&links)
		assert.Equal(t, int64(1), links)
	})

	t.Run("Appeal without primary case number rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id":  client.ID,
			"category":   "penal",
			"case_type":  "appeal",
			"case_level": models.CaseLevelAppeal,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Appeal with primary case number accepted", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id":           client.ID,
			"category":            "penal",
			"case_type":           "appeal",
			"case_level":          models.CaseLevelAppeal,
			"primary_case_number": "2025/100",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Comprehensive fees without expenses rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id": client.ID,
			"category":  "commercial",
			"case_type": "company",
			"fee_type":  models.FeeTypeComprehensive,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Comprehensive fees with expenses accepted", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id":     client.ID,
			"category":      "commercial",
			"case_type":     "company",
			"fee_type":      models.FeeTypeComprehensive,
			"case_expenses": 250.0,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Unknown category rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
			"client_id": client.ID,
			"category":  "maritime",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCasePaymentTotals(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "totals@test.com")
	client := createTestClient(t, database, lawyer, "CD789012")

	cs := &models.Case{
		LawyerID:   lawyer.ID,
		ClientID:   client.ID,
		Category:   "civil",
		CaseType:   "contract",
		ClientRole: models.ClientRoleDemandeur,
		CaseLevel:  models.CaseLevelPrimary,
		FeeType:    models.FeeTypeLawyerOnly,
		LawyerFees: 1000,
		Status:     models.CaseStatusOngoing,
	}
	assert.NoError(t, database.Create(cs).Error)

	getCase := func() caseResponse {
		_, c, rec := setupEcho(http.MethodGet, "/api/affaires/"+cs.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(cs.ID)
		actAsLawyer(c, lawyer)
		assert.NoError(t, GetCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp caseResponse
		decodeBody(t, rec, &resp)
		return resp
	}

	t.Run("Zero without payments", func(t *testing.T) {
		assert.Equal(t, 0.0, getCase().TotalPaidAmount)
	})

	t.Run("Sums paid amounts across payments", func(t *testing.T) {
		for _, paid := range []float64{400, 250} {
			payment := &models.Payment{
				LawyerID:    lawyer.ID,
				ClientID:    client.ID,
				CaseID:      &cs.ID,
				TotalAmount: 1000,
				PaidAmount:  paid,
				PaymentMode: models.PaymentModeCash,
				Status:      models.PaymentStatusPartial,
			}
			assert.NoError(t, database.Create(payment).Error)
		}

		assert.Equal(t, 650.0, getCase().TotalPaidAmount)
	})

	t.Run("Reading twice does not change the total", func(t *testing.T) {
		first := getCase().TotalPaidAmount
		second := getCase().TotalPaidAmount
		assert.Equal(t, first, second)
		assert.Equal(t, 650.0, second)

		// The total is never written back to the case row
		var stored models.Case
		assert.NoError(t, database.First(&stored, "id = ?", cs.ID).Error)
		assert.Equal(t, 1000.0, stored.LawyerFees)
	})
}

func TestCaseEndToEndFlow(t *testing.T) {
	database := setupTestDB(t)

	// Register a lawyer through the API
	_, c, rec := setupEcho(http.MethodPost, "/api/avocats/register", jsonBody(t, map[string]interface{}{
		"first_name": "Selim",
		"last_name":  "Mansour",
		"email":      "e2e@test.com",
		"password":   "password123",
	}))
	assert.NoError(t, RegisterLawyerHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var lawyer models.Lawyer
	assert.NoError(t, database.First(&lawyer, "email = ?", "e2e@test.com").Error)

	// Create a client
	_, c, rec = setupEcho(http.MethodPost, "/api/clients", jsonBody(t, map[string]interface{}{
		"first_name":  "Amine",
		"last_name":   "Cherif",
		"national_id": "E2E55555",
	}))
	actAsLawyer(c, &lawyer)
	assert.NoError(t, CreateClientHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var client models.Client
	decodeBody(t, rec, &client)

	// Open a lawyer-only case with 1000 in fees
	_, c, rec = setupEcho(http.MethodPost, "/api/affaires", jsonBody(t, map[string]interface{}{
		"client_id":   client.ID,
		"category":    "civil",
		"case_type":   "contract",
		"fee_type":    models.FeeTypeLawyerOnly,
		"lawyer_fees": 1000.0,
	}))
	actAsLawyer(c, &lawyer)
	assert.NoError(t, CreateCaseHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created caseResponse
	decodeBody(t, rec, &created)
	assert.Equal(t, 1000.0, created.LawyerFees)
	assert.Equal(t, 0.0, created.TotalPaidAmount)

	// Record a partial payment of 400
	_, c, rec = setupEcho(http.MethodPost, "/api/paiements", jsonBody(t, map[string]interface{}{
		"client_id":    client.ID,
		"case_id":      created.ID,
		"total_amount": 1000.0,
		"paid_amount":  400.0,
	}))
	actAsLawyer(c, &lawyer)
	assert.NoError(t, CreatePaymentHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var payment models.Payment
	decodeBody(t, rec, &payment)
	assert.Equal(t, models.PaymentStatusPartial, payment.Status)

	// The case now reports 400 paid
	_, c, rec = setupEcho(http.MethodGet, "/api/affaires/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	actAsLawyer(c, &lawyer)
	assert.NoError(t, GetCaseHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var fetched caseResponse
	decodeBody(t, rec, &fetched)
	assert.Equal(t, 400.0, fetched.TotalPaidAmount)
}

func TestCaseArchiveCycle(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "archive@test.com")
	client := createTestClient(t, database, lawyer, "AR000001")

	cs := &models.Case{
		LawyerID:   lawyer.ID,
		ClientID:   client.ID,
		Category:   "civil",
		ClientRole: models.ClientRoleDemandeur,
		CaseLevel:  models.CaseLevelPrimary,
		FeeType:    models.FeeTypeLawyerOnly,
		Status:     models.CaseStatusOngoing,
	}
	assert.NoError(t, database.Create(cs).Error)

	t.Run("Archive", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires/"+cs.ID+"/archive", jsonBody(t, map[string]string{
			"remarks": "settled out of court",
		}))
		c.SetParamNames("id")
		c.SetParamValues(cs.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, ArchiveCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var archived models.Case
		decodeBody(t, rec, &archived)
		assert.True(t, archived.IsArchived)
		assert.NotNil(t, archived.ArchivedAt)
		assert.Equal(t, models.CaseStatusArchived, archived.Status)
	})

	t.Run("Archived cases leave the default list", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/affaires", nil)
		actAsLawyer(c, lawyer)

		assert.NoError(t, ListCasesHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp PaginatedResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, int64(0), resp.Total)
	})

	t.Run("Restore", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/affaires/"+cs.ID+"/restore", nil)
		c.SetParamNames("id")
		c.SetParamValues(cs.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, RestoreCaseHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var restored models.Case
		decodeBody(t, rec, &restored)
		assert.False(t, restored.IsArchived)
		assert.Nil(t, restored.ArchivedAt)
		assert.Equal(t, models.CaseStatusOngoing, restored.Status)
	})
}
