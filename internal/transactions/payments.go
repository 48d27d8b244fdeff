package transactions

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/audit"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"` // optional, defaults to today
	Notes  string  `json:"notes"`
}

type PaymentResponse struct {
	ID            uint    `json:"id"`
	TransactionID uint    `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Notes         string  `json:"notes"`
}

// POST /api/transactions/:id/payment
// Validates against the settlement engine, then persists the immutable
// history row and the new cumulative paid amount in one write.
func RecordPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var trx models.Transaction
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}

		var body RecordPaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := settlement.ValidatePayment(trx, body.Amount); err != nil {
			var over *settlement.OverpaymentError
			if errors.As(err, &over) {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Cannot pay more than pending amount (%.2f)", over.Pending))
			}
			return fiber.NewError(fiber.StatusBadRequest, "Payment amount must be greater than zero")
		}

		payDate := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			payDate = d
		}

		payment := models.PaymentRecord{
			TransactionID: trx.ID,
			Amount:        body.Amount,
			Date:          payDate,
			Notes:         body.Notes,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			trx.AmountPaid += body.Amount
			trx.PaymentStatus = settlement.Settle(trx).Status
			return tx.Save(&trx).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record payment")
		}

		userID, username := currentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "payment",
			EntityID:    payment.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Payment of %.2f recorded against #%d", payment.Amount, trx.InvoiceNumber),
			After:       payment,
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(trx))
	}
}

// GET /api/transactions/:id/payments
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var trx models.Transaction
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}

		var payments []models.PaymentRecord
		if err := database.DB.Where("transaction_id = ?", trx.ID).
			Order("date desc, id desc").
			Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list payments")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, PaymentResponse{
				ID:            p.ID,
				TransactionID: p.TransactionID,
				Amount:        settlement.Round2(p.Amount),
				Date:          p.Date.Format("2006-01-02"),
				Notes:         p.Notes,
			})
		}
		return c.JSON(resp)
	}
}

type SettlementEditRequest struct {
	ShortageQuantity float64 `json:"shortage_quantity"`
	DeductionAmount  float64 `json:"deduction_amount"`
	DeductionNote    string  `json:"deduction_note"`
	MarkPaid         bool    `json:"mark_paid"`
}

// PUT /api/transactions/:id/settlement
// The settlement edit and the optional closing payment are one business
// operation: either both are committed or neither is.
func ApplySettlementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var trx models.Transaction
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}

		if trx.Type != models.TransactionTypeSale {
			return fiber.NewError(fiber.StatusBadRequest, "Settlement applies to sales only")
		}

		var body SettlementEditRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ShortageQuantity < 0 || body.DeductionAmount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "shortage and deduction cannot be negative")
		}

		before := toResponse(trx)
		updated, s := settlement.ApplyEdit(trx, body.ShortageQuantity, body.DeductionAmount, body.DeductionNote)

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if body.MarkPaid && s.Pending > 0 {
				payment := models.PaymentRecord{
					TransactionID: updated.ID,
					Amount:        s.Pending,
					Date:          time.Now(),
					Notes:         "Settlement closure",
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
				updated.AmountPaid += s.Pending
				updated.PaymentStatus = settlement.Settle(updated).Status
			}
			return tx.Save(&updated).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not apply settlement")
		}

		userID, username := currentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "transaction",
			EntityID:    updated.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Settlement updated on #%d: shortage %.2f qtl, deduction %.2f", updated.InvoiceNumber, body.ShortageQuantity, body.DeductionAmount),
			Before:      before,
			After:       toResponse(updated),
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		return c.JSON(toResponse(updated))
	}
}
