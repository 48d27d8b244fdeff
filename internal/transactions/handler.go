package transactions

import (
	"fmt"
	"strings"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/audit"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/auth"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreatePurchaseRequest struct {
	Date                string  `json:"date"` // "2006-01-02"
	ContactID           uint    `json:"contact_id"`
	GrainID             uint    `json:"grain_id"`
	WarehouseID         uint    `json:"warehouse_id"`
	NumberOfBags        int     `json:"number_of_bags"`
	BhartiKg            float64 `json:"bharti_kg"`
	ExtraLooseKg        float64 `json:"extra_loose_kg"`
	RatePerQuintal      float64 `json:"rate_per_quintal"`
	LabourCostPerBag    float64 `json:"labour_cost_per_bag"`
	TransportCostPerQtl float64 `json:"transport_cost_per_qtl"`
	MandiCost           float64 `json:"mandi_cost"`
	TaxPercentage       float64 `json:"tax_percentage"`
	Notes               string  `json:"notes"`
}

type UpdateTransactionRequest struct {
	Date            *string  `json:"date"`
	ContactID       *uint    `json:"contact_id"`
	GrainID         *uint    `json:"grain_id"`
	WarehouseID     *uint    `json:"warehouse_id"`
	QuantityQuintal *float64 `json:"quantity_quintal"`
	NumberOfBags    *int     `json:"number_of_bags"`
	RatePerQuintal  *float64 `json:"rate_per_quintal"`
	VehicleNumber   *string  `json:"vehicle_number"`
	DriverName      *string  `json:"driver_name"`
	Destination     *string  `json:"destination"`
	TransporterName *string  `json:"transporter_name"`
	Notes           *string  `json:"notes"`
}

type TransactionResponse struct {
	ID              uint    `json:"id"`
	Date            string  `json:"date"`
	Type            string  `json:"type"`
	InvoiceNumber   int     `json:"invoice_number"`
	ContactID       uint    `json:"contact_id"`
	GrainID         uint    `json:"grain_id"`
	WarehouseID     uint    `json:"warehouse_id"`
	QuantityQuintal float64 `json:"quantity_quintal"`
	NumberOfBags    int     `json:"number_of_bags"`
	RatePerQuintal  float64 `json:"rate_per_quintal"`
	TotalAmount     float64 `json:"total_amount"`
	TaxPercentage   float64 `json:"tax_percentage"`

	ShortageQuantity float64 `json:"shortage_quantity"`
	DeductionAmount  float64 `json:"deduction_amount"`
	DeductionNote    string  `json:"deduction_note"`

	EffectiveTotal float64 `json:"effective_total"`
	AmountPaid     float64 `json:"amount_paid"`
	PendingAmount  float64 `json:"pending_amount"`
	PaymentStatus  string  `json:"payment_status"`

	SaleGroupID     string `json:"sale_group_id,omitempty"`
	TransporterName string `json:"transporter_name,omitempty"`
	Destination     string `json:"destination,omitempty"`
	DriverName      string `json:"driver_name,omitempty"`
	VehicleNumber   string `json:"vehicle_number,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func toResponse(t models.Transaction) TransactionResponse {
	s := settlement.Settle(t)
	return TransactionResponse{
		ID:               t.ID,
		Date:             t.Date.Format("2006-01-02"),
		Type:             string(t.Type),
		InvoiceNumber:    t.InvoiceNumber,
		ContactID:        t.ContactID,
		GrainID:          t.GrainID,
		WarehouseID:      t.WarehouseID,
		QuantityQuintal:  t.QuantityQuintal,
		NumberOfBags:     t.NumberOfBags,
		RatePerQuintal:   t.RatePerQuintal,
		TotalAmount:      settlement.Round2(t.TotalAmount),
		TaxPercentage:    t.TaxPercentage,
		ShortageQuantity: t.ShortageQuantity,
		DeductionAmount:  t.DeductionAmount,
		DeductionNote:    t.DeductionNote,
		EffectiveTotal:   settlement.Round2(s.EffectiveTotal),
		AmountPaid:       settlement.Round2(t.AmountPaid),
		PendingAmount:    settlement.Round2(s.Pending),
		PaymentStatus:    string(s.Status),
		SaleGroupID:      t.SaleGroupID,
		TransporterName:  t.TransporterName,
		Destination:      t.Destination,
		DriverName:       t.DriverName,
		VehicleNumber:    t.VehicleNumber,
		Notes:            t.Notes,
	}
}

func currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	username, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, username
}

func nextInvoiceNumber(tx *gorm.DB, trxType models.TransactionType) (int, error) {
	var maxInv int
	err := tx.Model(&models.Transaction{}).
		Where("type = ?", trxType).
		Select("COALESCE(MAX(invoice_number), 0)").
		Scan(&maxInv).Error
	return maxInv + 1, err
}

// -------------------------
// Purchase creation
// -------------------------

// POST /api/transactions/purchase
// Quantity comes from bags*bharti plus loose kg; the total paid to the
// supplier is gross grain value minus the per-bag labour deduction.
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ContactID == 0 || body.GrainID == 0 || body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "contact_id, grain_id and warehouse_id are required")
		}
		if body.NumberOfBags <= 0 && body.ExtraLooseKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "number_of_bags or extra_loose_kg must be positive")
		}
		if body.RatePerQuintal <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "rate_per_quintal must be greater than zero")
		}

		date := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			date = d
		}

		qty := settlement.QuantityFromBags(body.NumberOfBags, body.BhartiKg, body.ExtraLooseKg)
		total := settlement.PurchaseTotal(qty, body.RatePerQuintal, body.NumberOfBags, body.LabourCostPerBag)

		trx := models.Transaction{
			Date:                date,
			Type:                models.TransactionTypePurchase,
			ContactID:           body.ContactID,
			GrainID:             body.GrainID,
			WarehouseID:         body.WarehouseID,
			QuantityQuintal:     qty,
			NumberOfBags:        body.NumberOfBags,
			RatePerQuintal:      body.RatePerQuintal,
			TotalAmount:         total,
			ExtraLooseQuantity:  body.ExtraLooseKg,
			TaxPercentage:       body.TaxPercentage,
			LabourCostPerBag:    body.LabourCostPerBag,
			TransportCostPerQtl: body.TransportCostPerQtl,
			MandiCost:           body.MandiCost,
			PaymentStatus:       models.PaymentStatusPending,
			Notes:               strings.TrimSpace(body.Notes),
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			inv, err := nextInvoiceNumber(tx, models.TransactionTypePurchase)
			if err != nil {
				return err
			}
			trx.InvoiceNumber = inv
			return tx.Create(&trx).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save purchase")
		}

		userID, username := currentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "transaction",
			EntityID:    trx.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Purchase #%d recorded: %.2f qtl @ %.2f", trx.InvoiceNumber, trx.QuantityQuintal, trx.RatePerQuintal),
			After:       toResponse(trx),
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(trx))
	}
}

// -------------------------
// List / Update / Delete
// -------------------------

// GET /api/transactions?type=...&limit=...&offset=...
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Transaction{})

		if typeFilter := c.Query("type"); typeFilter != "" {
			if typeFilter != string(models.TransactionTypePurchase) && typeFilter != string(models.TransactionTypeSale) {
				return fiber.NewError(fiber.StatusBadRequest, "type must be 'purchase' or 'sale'")
			}
			dbq = dbq.Where("type = ?", typeFilter)
		}

		limit := c.QueryInt("limit", 500)
		offset := c.QueryInt("offset", 0)

		var trxs []models.Transaction
		if err := dbq.Order("date desc, id desc").Limit(limit).Offset(offset).Find(&trxs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}

		resp := make([]TransactionResponse, 0, len(trxs))
		for _, t := range trxs {
			resp = append(resp, toResponse(t))
		}
		return c.JSON(resp)
	}
}

// PUT /api/transactions/:id
func UpdateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var trx models.Transaction
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}

		var body UpdateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := toResponse(trx)

		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			trx.Date = d
		}
		if body.ContactID != nil {
			trx.ContactID = *body.ContactID
		}
		if body.GrainID != nil {
			trx.GrainID = *body.GrainID
		}
		if body.WarehouseID != nil {
			trx.WarehouseID = *body.WarehouseID
		}
		if body.QuantityQuintal != nil {
			if *body.QuantityQuintal <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity_quintal must be greater than zero")
			}
			trx.QuantityQuintal = *body.QuantityQuintal
		}
		if body.NumberOfBags != nil {
			if *body.NumberOfBags < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "number_of_bags cannot be negative")
			}
			trx.NumberOfBags = *body.NumberOfBags
		}
		if body.RatePerQuintal != nil {
			if *body.RatePerQuintal <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "rate_per_quintal must be greater than zero")
			}
			trx.RatePerQuintal = *body.RatePerQuintal
		}
		if body.VehicleNumber != nil {
			trx.VehicleNumber = *body.VehicleNumber
		}
		if body.DriverName != nil {
			trx.DriverName = *body.DriverName
		}
		if body.Destination != nil {
			trx.Destination = *body.Destination
		}
		if body.TransporterName != nil {
			trx.TransporterName = *body.TransporterName
		}
		if body.Notes != nil {
			trx.Notes = *body.Notes
		}

		// Quantity or rate edits re-derive the invoice total.
		if body.QuantityQuintal != nil || body.RatePerQuintal != nil {
			if trx.Type == models.TransactionTypePurchase {
				trx.TotalAmount = settlement.PurchaseTotal(trx.QuantityQuintal, trx.RatePerQuintal, trx.NumberOfBags, trx.LabourCostPerBag)
			} else {
				trx.TotalAmount = settlement.SaleTotal(trx.QuantityQuintal, trx.RatePerQuintal)
			}
		}
		trx.PaymentStatus = settlement.Settle(trx).Status

		if err := database.DB.Save(&trx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update transaction")
		}

		userID, username := currentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "transaction",
			EntityID:    trx.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Transaction #%d updated", trx.InvoiceNumber),
			Before:      before,
			After:       toResponse(trx),
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		return c.JSON(toResponse(trx))
	}
}

// DELETE /api/transactions/:id
func DeleteTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var trx models.Transaction
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}

		before := toResponse(trx)

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("transaction_id = ?", trx.ID).Delete(&models.PaymentRecord{}).Error; err != nil {
				return err
			}
			return tx.Delete(&trx).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete transaction")
		}

		userID, username := currentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "transaction",
			EntityID:    trx.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Transaction #%d deleted: %.2f", trx.InvoiceNumber, trx.TotalAmount),
			Before:      before,
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
