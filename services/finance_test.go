package services

import (
	"testing"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestSumPaymentsByCase(t *testing.T) {
	db := setupTestDB(t)
	lawyer, client := createLawyerAndClient(t, db, "finance@test.com")

	newCase := func() *models.Case {
		cs := &models.Case{
			LawyerID:   lawyer.ID,
			ClientID:   client.ID,
			Category:   "civil",
			ClientRole: models.ClientRoleDemandeur,
			CaseLevel:  models.CaseLevelPrimary,
			FeeType:    models.FeeTypeLawyerOnly,
			Status:     models.CaseStatusOngoing,
		}
		assert.NoError(t, db.Create(cs).Error)
		return cs
	}
	paid := newCase()
	unpaid := newCase()

	for _, amount := range []float64{100, 250.5} {
		payment := &models.Payment{
			LawyerID:    lawyer.ID,
			ClientID:    client.ID,
			CaseID:      &paid.ID,
			TotalAmount: 1000,
			PaidAmount:  amount,
			PaymentMode: models.PaymentModeCash,
			Status:      models.PaymentStatusPartial,
		}
		assert.NoError(t, db.Create(payment).Error)
	}

	t.Run("Totals grouped per case", func(t *testing.T) {
		totals, err := SumPaymentsByCase(db, []string{paid.ID, unpaid.ID})
		assert.NoError(t, err)
		assert.Equal(t, 350.5, totals[paid.ID])

		// Cases without payments default to zero
		_, present := totals[unpaid.ID]
		assert.False(t, present)
		assert.Equal(t, 0.0, totals[unpaid.ID])
	})

	t.Run("Empty input short-circuits", func(t *testing.T) {
		totals, err := SumPaymentsByCase(db, nil)
		assert.NoError(t, err)
		assert.Empty(t, totals)
	})

	t.Run("Single-case helper", func(t *testing.T) {
		total, err := CasePaidTotal(db, paid.ID)
		assert.NoError(t, err)
		assert.Equal(t, 350.5, total)

		total, err = CasePaidTotal(db, unpaid.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})

	t.Run("Aggregation is idempotent", func(t *testing.T) {
		first, err := CasePaidTotal(db, paid.ID)
		assert.NoError(t, err)
		second, err := CasePaidTotal(db, paid.ID)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRecomputePaymentStatus(t *testing.T) {
	cases := []struct {
		total    float64
		paid     float64
		expected string
	}{
		{1000, 0, models.PaymentStatusPending},
		{1000, -5, models.PaymentStatusPending},
		{1000, 500, models.PaymentStatusPartial},
		{1000, 1000, models.PaymentStatusComplete},
		{1000, 1200, models.PaymentStatusComplete},
	}

	for _, tc := range cases {
		p := &models.Payment{TotalAmount: tc.total, PaidAmount: tc.paid}
		RecomputePaymentStatus(p)
		assert.Equal(t, tc.expected, p.Status)
	}
}
