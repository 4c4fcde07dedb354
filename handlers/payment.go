package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type paymentRequest struct {
	ClientID       string   `json:"client_id"`
	CaseID         *string  `json:"case_id"`
	ConsultationID *string  `json:"consultation_id"`
	TotalAmount    *float64 `json:"total_amount"`
	PaidAmount     *float64 `json:"paid_amount"`
	PaymentMode    string   `json:"payment_mode"`
}

// ListPaymentsHandler returns the lawyer's payments with optional case and
// client filters
func ListPaymentsHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Payment{})

	if caseID := c.QueryParam("case_id"); caseID != "" {
		query = query.Where("case_id = ?", caseID)
	}
	if clientID := c.QueryParam("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	resp, err := paginate(query.Preload("Client").Preload("Case").Order("created_at DESC"), page, limit, &payments)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list payments"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetPaymentHandler returns one payment with its relations
func GetPaymentHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment ID"})
	}

	var payment models.Payment
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Case").
		Preload("Consultation").
		First(&payment, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	return c.JSON(http.StatusOK, payment)
}

// CreatePaymentHandler records a payment. The status is derived from the
// amounts, never set directly.
func CreatePaymentHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(paymentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID == "" || req.TotalAmount == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client and total amount are required"})
	}
	if *req.TotalAmount < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Total amount cannot be negative"})
	}

	paidAmount := 0.0
	if req.PaidAmount != nil {
		paidAmount = *req.PaidAmount
	}
	if paidAmount < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Paid amount cannot be negative"})
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = models.PaymentModeCash
	}
	if !models.IsValidPaymentMode(mode) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment mode"})
	}

	var client models.Client
	if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, lawyer.ID).First(&client).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
	}

	if req.CaseID != nil && *req.CaseID != "" {
		var count int64
		db.DB.Model(&models.Case{}).Where("id = ? AND lawyer_id = ?", *req.CaseID, lawyer.ID).Count(&count)
		if count == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Case not found"})
		}
	}
	if req.ConsultationID != nil && *req.ConsultationID != "" {
		var count int64
		db.DB.Model(&models.Consultation{}).Where("id = ? AND lawyer_id = ?", *req.ConsultationID, lawyer.ID).Count(&count)
		if count == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Consultation not found"})
		}
	}

	payment := &models.Payment{
		LawyerID:       lawyer.ID,
		ClientID:       client.ID,
		CaseID:         req.CaseID,
		ConsultationID: req.ConsultationID,
		TotalAmount:    *req.TotalAmount,
		PaidAmount:     paidAmount,
		PaymentMode:    mode,
	}
	services.RecomputePaymentStatus(payment)

	if err := db.DB.Create(payment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create payment"})
	}

	return c.JSON(http.StatusCreated, payment)
}

// UpdatePaymentHandler updates a payment's amounts and mode; the status is
// recomputed from the merged amounts
func UpdatePaymentHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment ID"})
	}

	var payment models.Payment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&payment, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	req := new(paymentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.TotalAmount != nil {
		if *req.TotalAmount < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Total amount cannot be negative"})
		}
		payment.TotalAmount = *req.TotalAmount
	}
	if req.PaidAmount != nil {
		if *req.PaidAmount < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Paid amount cannot be negative"})
		}
		payment.PaidAmount = *req.PaidAmount
	}
	if req.PaymentMode != "" {
		if !models.IsValidPaymentMode(req.PaymentMode) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment mode"})
		}
		payment.PaymentMode = req.PaymentMode
	}

	services.RecomputePaymentStatus(&payment)

	if err := db.DB.Save(&payment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update payment"})
	}

	return c.JSON(http.StatusOK, payment)
}

// DeletePaymentHandler removes a payment and its transactions
func DeletePaymentHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment ID"})
	}

	var payment models.Payment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&payment, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", payment.ID).Delete(&models.PaymentTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&payment).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete payment"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Payment deleted"})
}

type transactionRequest struct {
	PaymentID       string   `json:"payment_id"`
	Amount          *float64 `json:"amount"`
	Mode            string   `json:"mode"`
	TransactionType string   `json:"transaction_type"`
	ReceiptRef      string   `json:"receipt_ref"`
}

// ListPaymentTransactionsHandler returns the movements of one payment
func ListPaymentTransactionsHandler(c echo.Context) error {
	paymentID := c.QueryParam("payment_id")
	if !isValidID(paymentID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A payment_id query parameter is required"})
	}

	var payment models.Payment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	var transactions []models.PaymentTransaction
	if err := db.DB.Where("payment_id = ?", payment.ID).Order("created_at ASC").Find(&transactions).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list transactions"})
	}

	return c.JSON(http.StatusOK, transactions)
}

// CreatePaymentTransactionHandler records a movement against a payment and
// rolls the amount into the payment's paid total
func CreatePaymentTransactionHandler(c echo.Context) error {
	req := new(transactionRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if !isValidID(req.PaymentID) || req.Amount == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Payment and amount are required"})
	}
	if *req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount must be positive"})
	}

	mode := req.Mode
	if mode == "" {
		mode = models.PaymentModeCash
	}
	if !models.IsValidPaymentMode(mode) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment mode"})
	}

	transactionType := req.TransactionType
	if transactionType == "" {
		transactionType = models.TransactionTypePayment
	}
	if !models.IsValidTransactionType(transactionType) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid transaction type"})
	}

	var payment models.Payment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&payment, "id = ?", req.PaymentID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	transaction := &models.PaymentTransaction{
		PaymentID:       payment.ID,
		Amount:          *req.Amount,
		Mode:            mode,
		TransactionType: transactionType,
		ReceiptRef:      req.ReceiptRef,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		payment.PaidAmount += transaction.Amount
		services.RecomputePaymentStatus(&payment)
		return tx.Save(&payment).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record transaction"})
	}

	return c.JSON(http.StatusCreated, transaction)
}

// DeletePaymentTransactionHandler removes a movement and rolls its amount
// back out of the payment
func DeletePaymentTransactionHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid transaction ID"})
	}

	var transaction models.PaymentTransaction
	if err := db.DB.First(&transaction, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Transaction not found"})
	}

	var payment models.Payment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&payment, "id = ?", transaction.PaymentID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&transaction).Error; err != nil {
			return err
		}
		payment.PaidAmount -= transaction.Amount
		if payment.PaidAmount < 0 {
			payment.PaidAmount = 0
		}
		services.RecomputePaymentStatus(&payment)
		return tx.Save(&payment).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete transaction"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Transaction deleted"})
}
