package transactions

import (
	"fmt"
	"strings"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/audit"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/dispatch"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseAllocation struct {
	WarehouseID uint `json:"warehouse_id"`
	Bags        int  `json:"bags"`
}

type BulkSaleRequest struct {
	Date           string                `json:"date"`
	ContactID      uint                  `json:"contact_id"`
	GrainID        uint                  `json:"grain_id"`
	RatePerQuintal float64               `json:"rate_per_quintal"`
	BhartiKg       float64               `json:"bharti_kg"`
	TaxPercentage  float64               `json:"tax_percentage"`
	Warehouses     []WarehouseAllocation `json:"warehouses"`

	TransporterName string  `json:"transporter_name"`
	Destination     string  `json:"destination"`
	DriverName      string  `json:"driver_name"`
	VehicleNumber   string  `json:"vehicle_number"`
	FreightRate     float64 `json:"freight_rate_per_qtl"`

	LabourCostPerBag    float64 `json:"labour_cost_per_bag"`
	TransportCostPerQtl float64 `json:"transport_cost_per_qtl"`
	MandiCost           float64 `json:"mandi_cost"`
}

// POST /api/transactions/bulk-sale
// One bulk sale spans several warehouse allocations: each becomes its own
// transaction row sharing a sale group id and one invoice number, the
// acquisition cost is snapshotted as the grain's average purchase price,
// and a dispatch (freight) record is opened for the group.
func CreateBulkSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BulkSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ContactID == 0 || body.GrainID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "contact_id and grain_id are required")
		}
		if len(body.Warehouses) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "at least one warehouse allocation is required")
		}
		if body.RatePerQuintal <= 0 || body.BhartiKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "rate_per_quintal and bharti_kg must be greater than zero")
		}
		for _, alloc := range body.Warehouses {
			if alloc.WarehouseID == 0 || alloc.Bags <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "every allocation needs warehouse_id and a positive bag count")
			}
		}

		date := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			date = d
		}

		saleGroupID := uuid.NewString()
		var created []models.Transaction

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			// Average acquisition cost across this grain's purchases,
			// snapshotted for later profit reporting.
			var purchases []models.Transaction
			if err := tx.Where("type = ? AND grain_id = ?", models.TransactionTypePurchase, body.GrainID).
				Find(&purchases).Error; err != nil {
				return err
			}
			var totalVal, totalQty float64
			for _, p := range purchases {
				totalVal += p.TotalAmount
				totalQty += p.QuantityQuintal
			}
			avgCost := 0.0
			if totalQty > 0 {
				avgCost = totalVal / totalQty
			}

			inv, err := nextInvoiceNumber(tx, models.TransactionTypeSale)
			if err != nil {
				return err
			}

			var totalWeight float64
			for _, alloc := range body.Warehouses {
				qty := settlement.QuantityFromBags(alloc.Bags, body.BhartiKg, 0)
				totalWeight += qty

				trx := models.Transaction{
					Date:                date,
					Type:                models.TransactionTypeSale,
					InvoiceNumber:       inv,
					ContactID:           body.ContactID,
					GrainID:             body.GrainID,
					WarehouseID:         alloc.WarehouseID,
					QuantityQuintal:     qty,
					NumberOfBags:        alloc.Bags,
					RatePerQuintal:      body.RatePerQuintal,
					TotalAmount:         settlement.SaleTotal(qty, body.RatePerQuintal),
					TaxPercentage:       body.TaxPercentage,
					CostPricePerQuintal: avgCost,
					PaymentStatus:       models.PaymentStatusPending,
					Notes:               fmt.Sprintf("Bulk Sale: %d bags", alloc.Bags),
					TransporterName:     strings.TrimSpace(body.TransporterName),
					Destination:         strings.TrimSpace(body.Destination),
					DriverName:          strings.TrimSpace(body.DriverName),
					VehicleNumber:       strings.TrimSpace(body.VehicleNumber),
					SaleGroupID:         saleGroupID,
					LabourCostPerBag:    body.LabourCostPerBag,
					TransportCostPerQtl: body.TransportCostPerQtl,
					MandiCost:           body.MandiCost,
				}
				if err := tx.Create(&trx).Error; err != nil {
					return err
				}
				created = append(created, trx)
			}

			// Freight ledger for the group. Gross freight is fixed here;
			// only the payment/deduction fields may change later.
			rec := models.DispatchRecord{
				SaleGroupID:     saleGroupID,
				TransporterName: strings.TrimSpace(body.TransporterName),
				VehicleNumber:   strings.TrimSpace(body.VehicleNumber),
				DriverName:      strings.TrimSpace(body.DriverName),
				TotalWeight:     totalWeight,
				Rate:            body.FreightRate,
				GrossFreight:    dispatch.GrossFreight(totalWeight, body.FreightRate),
				Status:          models.DispatchStatusPending,
			}
			return tx.Create(&rec).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save bulk sale")
		}

		userID, username := currentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "transaction",
			EntityID:    created[0].ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Bulk sale #%d recorded: %d rows", created[0].InvoiceNumber, len(created)),
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		resp := make([]TransactionResponse, 0, len(created))
		for _, t := range created {
			resp = append(resp, toResponse(t))
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}
