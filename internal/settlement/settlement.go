// Package settlement holds the pure settlement and margin arithmetic for
// transactions. Nothing here touches the database or mutates its inputs;
// callers fetch a snapshot, compute, and persist the result themselves.
package settlement

import (
	"errors"
	"fmt"
	"math"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
)

// Tolerance absorbs currency rounding accumulated over repeated partial
// payments. Downstream behavior (what counts as "fully paid") depends on
// this exact value; do not tighten it.
const Tolerance = 1.0

var ErrInvalidAmount = errors.New("payment amount must be greater than zero")

// OverpaymentError is returned when a requested payment would exceed the
// owed amount beyond Tolerance. It carries the computed pending figure so
// callers can show the user why the payment was rejected.
type OverpaymentError struct {
	Requested float64
	Pending   float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment %.2f exceeds pending amount %.2f", e.Requested, e.Pending)
}

type Settlement struct {
	EffectiveTotal float64
	Pending        float64
	Status         models.PaymentStatus
}

// EffectiveTotal is the amount the party actually owes (or is owed).
// Purchases have no shortage/deduction concept; for sales the recorded
// shortage and flat deduction net against the gross invoice total.
func EffectiveTotal(trx models.Transaction) float64 {
	if trx.Type != models.TransactionTypeSale {
		return trx.TotalAmount
	}
	return trx.TotalAmount - trx.ShortageQuantity*trx.RatePerQuintal - trx.DeductionAmount
}

// Settle derives the net position of a transaction against its cumulative
// paid amount. A negative effective total (total loss/theft) with nothing
// paid counts as settled, which the tolerance check covers naturally.
func Settle(trx models.Transaction) Settlement {
	effective := EffectiveTotal(trx)
	pending := effective - trx.AmountPaid

	status := models.PaymentStatusPending
	switch {
	case trx.AmountPaid >= effective-Tolerance:
		status = models.PaymentStatusPaid
	case trx.AmountPaid > 0:
		status = models.PaymentStatusPartial
	}

	return Settlement{
		EffectiveTotal: effective,
		Pending:        pending,
		Status:         status,
	}
}

// ValidatePayment guards a new payment against the current snapshot.
// It rejects non-positive amounts and anything beyond pending+Tolerance;
// it never clamps.
func ValidatePayment(trx models.Transaction, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s := Settle(trx)
	if amount > s.Pending+Tolerance {
		return &OverpaymentError{Requested: amount, Pending: s.Pending}
	}
	return nil
}

// ApplyEdit returns a copy of the transaction with new settlement figures
// and the recomputed position. The caller persists the copy; when the user
// also wants the balance marked paid, the Pending of the returned
// Settlement is the exact payment to post in the same database
// transaction as the edit.
func ApplyEdit(trx models.Transaction, shortageQty, deductionAmount float64, deductionNote string) (models.Transaction, Settlement) {
	updated := trx
	updated.ShortageQuantity = shortageQty
	updated.DeductionAmount = deductionAmount
	updated.DeductionNote = deductionNote

	s := Settle(updated)
	updated.PaymentStatus = s.Status
	return updated, s
}

// Round2 rounds to 2 decimals. Used at the presentation boundary only so
// rounding error never compounds across internal computations.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
