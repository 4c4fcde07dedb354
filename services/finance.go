package services

import (
	"fmt"

	"cabinet_avocat_go/models"

	"gorm.io/gorm"
)

// SumPaymentsByCase computes, per case, the sum of paid amounts across all
// payments referencing it. Cases without payments are absent from the map;
// callers default to 0. The total is read-time denormalization and is never
// written back to the case.
func SumPaymentsByCase(db *gorm.DB, caseIDs []string) (map[string]float64, error) {
	totals := make(map[string]float64, len(caseIDs))
	if len(caseIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		CaseID string
		Total  float64
	}

	err := db.Model(&models.Payment{}).
		Select("case_id, SUM(paid_amount) AS total").
		Where("case_id IN ?", caseIDs).
		Group("case_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	for _, row := range rows {
		totals[row.CaseID] = row.Total
	}

	return totals, nil
}

// CasePaidTotal returns the paid total for a single case (0 when none)
func CasePaidTotal(db *gorm.DB, caseID string) (float64, error) {
	totals, err := SumPaymentsByCase(db, []string{caseID})
	if err != nil {
		return 0, err
	}
	return totals[caseID], nil
}

// RecomputePaymentStatus derives a payment's status from its amounts
func RecomputePaymentStatus(p *models.Payment) {
	switch {
	case p.PaidAmount <= 0:
		p.Status = models.PaymentStatusPending
	case p.PaidAmount < p.TotalAmount:
		p.Status = models.PaymentStatusPartial
	default:
		p.Status = models.PaymentStatusComplete
	}
}
