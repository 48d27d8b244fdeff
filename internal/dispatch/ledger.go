// Package dispatch reconciles the freight ledger kept per bulk sale:
// what a transporter is owed, what has been paid or deducted, and whether
// an edit to the ledger is allowed at all.
package dispatch

import (
	"fmt"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
)

// Tolerance mirrors the settlement tolerance of 1.0 currency unit.
const Tolerance = 1.0

// OverpaymentError rejects an edit whose payments and deductions would
// exceed the gross freight. Carries the balance so the caller can report
// why. The stored record must be left unchanged on rejection.
type OverpaymentError struct {
	Requested float64 // sum of the four fields after the edit
	Gross     float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payments and deductions %.2f exceed gross freight %.2f", e.Requested, e.Gross)
}

// PaymentField names one of the four editable ledger fields.
type PaymentField string

const (
	FieldAdvancePaid       PaymentField = "advance_paid"
	FieldDeliveryPaid      PaymentField = "delivery_paid"
	FieldShortageDeduction PaymentField = "shortage_deduction"
	FieldOtherDeduction    PaymentField = "other_deduction"
)

type Reconciliation struct {
	BalancePending float64
	Status         models.DispatchStatus
}

// GrossFreight is derived once at dispatch creation and fixed thereafter.
func GrossFreight(totalWeight, rate float64) float64 {
	return totalWeight * rate
}

// Reconcile nets the ledger: gross freight minus everything paid to or
// withheld from the transporter.
func Reconcile(rec models.DispatchRecord) Reconciliation {
	balance := rec.GrossFreight - rec.AdvancePaid - rec.DeliveryPaid - rec.ShortageDeduction - rec.OtherDeduction

	status := models.DispatchStatusPending
	if balance <= Tolerance {
		status = models.DispatchStatusPaid
	}

	return Reconciliation{BalancePending: balance, Status: status}
}

// ApplyPayment sets one payment/deduction field to a new value and
// returns the updated copy. The edit is rejected, not clamped, when the
// four fields would exceed gross freight beyond Tolerance; the input
// record is never modified.
func ApplyPayment(rec models.DispatchRecord, field PaymentField, value float64) (models.DispatchRecord, error) {
	if value < 0 {
		return rec, fmt.Errorf("%s cannot be negative", field)
	}

	updated := rec
	switch field {
	case FieldAdvancePaid:
		updated.AdvancePaid = value
	case FieldDeliveryPaid:
		updated.DeliveryPaid = value
	case FieldShortageDeduction:
		updated.ShortageDeduction = value
	case FieldOtherDeduction:
		updated.OtherDeduction = value
	default:
		return rec, fmt.Errorf("unknown dispatch field %q", field)
	}

	sum := updated.AdvancePaid + updated.DeliveryPaid + updated.ShortageDeduction + updated.OtherDeduction
	if sum > updated.GrossFreight+Tolerance {
		return rec, &OverpaymentError{Requested: sum, Gross: updated.GrossFreight}
	}

	updated.Status = Reconcile(updated).Status
	return updated, nil
}
