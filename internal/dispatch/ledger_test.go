package dispatch

import (
	"errors"
	"testing"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshRecord() models.DispatchRecord {
	return models.DispatchRecord{
		SaleGroupID:  "g-1",
		TotalWeight:  250,
		Rate:         200,
		GrossFreight: GrossFreight(250, 200), // 50000
		Status:       models.DispatchStatusPending,
	}
}

func TestGrossFreight(t *testing.T) {
	assert.InDelta(t, 50000, GrossFreight(250, 200), 1e-9)
}

func TestReconcileConservation(t *testing.T) {
	rec := freshRecord()
	rec.AdvancePaid = 20000
	rec.DeliveryPaid = 15000
	rec.ShortageDeduction = 3000
	rec.OtherDeduction = 2000

	r := Reconcile(rec)

	// gross is conserved: payments + deductions + balance == gross
	sum := rec.AdvancePaid + rec.DeliveryPaid + rec.ShortageDeduction + rec.OtherDeduction
	assert.InDelta(t, rec.GrossFreight, sum+r.BalancePending, 1e-9)
	assert.Equal(t, models.DispatchStatusPending, r.Status)
}

func TestReconcileStatus(t *testing.T) {
	rec := freshRecord()
	rec.AdvancePaid = 49999.50

	// within tolerance of gross counts as paid
	assert.Equal(t, models.DispatchStatusPaid, Reconcile(rec).Status)

	rec.AdvancePaid = 48000
	assert.Equal(t, models.DispatchStatusPending, Reconcile(rec).Status)
}

func TestApplyPaymentUpdatesField(t *testing.T) {
	rec := freshRecord()

	updated, err := ApplyPayment(rec, FieldAdvancePaid, 20000)
	require.NoError(t, err)
	assert.InDelta(t, 20000, updated.AdvancePaid, 1e-9)
	assert.Equal(t, models.DispatchStatusPending, updated.Status)

	// input untouched
	assert.Zero(t, rec.AdvancePaid)
}

func TestApplyPaymentRejectsOverGross(t *testing.T) {
	rec := freshRecord()
	rec.AdvancePaid = 20000

	// 20000 + 35000 exceeds 50000 beyond tolerance: reject, don't clamp
	_, err := ApplyPayment(rec, FieldDeliveryPaid, 35000)
	require.Error(t, err)

	var over *OverpaymentError
	require.True(t, errors.As(err, &over))
	assert.InDelta(t, 55000, over.Requested, 1e-9)
	assert.InDelta(t, 50000, over.Gross, 1e-9)

	// the exact remainder is allowed and closes the ledger
	updated, err := ApplyPayment(rec, FieldDeliveryPaid, 30000)
	require.NoError(t, err)
	assert.Equal(t, models.DispatchStatusPaid, updated.Status)
}

func TestApplyPaymentRejectsNegativeAndUnknownField(t *testing.T) {
	rec := freshRecord()

	_, err := ApplyPayment(rec, FieldOtherDeduction, -1)
	assert.Error(t, err)

	_, err = ApplyPayment(rec, PaymentField("gross_freight"), 100)
	assert.Error(t, err)
}
