package handlers

import (
	"net/http"
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreatePayment(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "payments@test.com")
	client := createTestClient(t, database, lawyer, "PA111111")

	t.Run("Status derived from amounts", func(t *testing.T) {
		cases := []struct {
			paid     float64
			expected string
		}{
			{0, models.PaymentStatusPending},
			{300, models.PaymentStatusPartial},
			{1000, models.PaymentStatusComplete},
		}

		for _, tc := range cases {
			_, c, rec := setupEcho(http.MethodPost, "/api/paiements", jsonBody(t, map[string]interface{}{
				"client_id":    client.ID,
				"total_amount": 1000.0,
				"paid_amount":  tc.paid,
			}))
			actAsLawyer(c, lawyer)

			assert.NoError(t, CreatePaymentHandler(c))
			assert.Equal(t, http.StatusCreated, rec.Code)

			var created models.Payment
			decodeBody(t, rec, &created)
			assert.Equal(t, tc.expected, created.Status)
		}
	})

	t.Run("Negative paid amount rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/paiements", jsonBody(t, map[string]interface{}{
			"client_id":    client.ID,
			"total_amount": 1000.0,
			"paid_amount":  -50.0,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreatePaymentHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown case rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/paiements", jsonBody(t, map[string]interface{}{
			"client_id":    client.ID,
			"case_id":      "6f1e1a9e-0000-0000-0000-000000000000",
			"total_amount": 500.0,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreatePaymentHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPaymentTransactionsRollUp(t *testing.T) {
	database := setupTestDB(t)
	lawyer := createTestLawyer(t, database, "transactions@test.com")
	client := createTestClient(t, database, lawyer, "PA222222")

	payment := &models.Payment{
		LawyerID:    lawyer.ID,
		ClientID:    client.ID,
		TotalAmount: 1000,
		PaidAmount:  0,
		PaymentMode: models.PaymentModeCash,
		Status:      models.PaymentStatusPending,
	}
	assert.NoError(t, database.Create(payment).Error)

	t.Run("Recording a movement updates the payment", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/transactions", jsonBody(t, map[string]interface{}{
			"payment_id":  payment.ID,
			"amount":      400.0,
			"receipt_ref": "RC-2026-001",
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreatePaymentTransactionHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var updated models.Payment
		assert.NoError(t, database.First(&updated, "id = ?", payment.ID).Error)
		assert.Equal(t, 400.0, updated.PaidAmount)
		assert.Equal(t, models.PaymentStatusPartial, updated.Status)
	})

	t.Run("Deleting the movement rolls it back", func(t *testing.T) {
		var transaction models.PaymentTransaction
		assert.NoError(t, database.First(&transaction, "payment_id = ?", payment.ID).Error)

		_, c, rec := setupEcho(http.MethodDelete, "/api/transactions/"+transaction.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(transaction.ID)
		actAsLawyer(c, lawyer)

		assert.NoError(t, DeletePaymentTransactionHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated models.Payment
		assert.NoError(t, database.First(&updated, "id = ?", payment.ID).Error)
		assert.Equal(t, 0.0, updated.PaidAmount)
		assert.Equal(t, models.PaymentStatusPending, updated.Status)
	})

	t.Run("Zero amount rejected", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/transactions", jsonBody(t, map[string]interface{}{
			"payment_id": payment.ID,
			"amount":     0.0,
		}))
		actAsLawyer(c, lawyer)

		assert.NoError(t, CreatePaymentTransactionHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
