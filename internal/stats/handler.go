// Package stats serves the dashboard headline figures.
package stats

import (
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/inventory"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"

	"github.com/gofiber/fiber/v2"
)

type Dashboard struct {
	TotalPurchases float64 `json:"total_purchases"`
	TotalSales     float64 `json:"total_sales"`

	// Receivable is pending money on sales against their effective
	// totals; payable is pending money on purchases.
	Receivable float64 `json:"receivable"`
	Payable    float64 `json:"payable"`

	InventoryValue float64 `json:"inventory_value"`
	TotalProfit    float64 `json:"total_profit"`

	PurchasesThisMonth float64 `json:"purchases_this_month"`
	SalesThisMonth     float64 `json:"sales_this_month"`
}

// Compute folds the transaction history into the dashboard totals.
func Compute(trxs []models.Transaction, now time.Time) Dashboard {
	var d Dashboard
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for _, t := range trxs {
		s := settlement.Settle(t)

		switch t.Type {
		case models.TransactionTypePurchase:
			d.TotalPurchases += t.TotalAmount
			if s.Pending > 0 {
				d.Payable += s.Pending
			}
			if !t.Date.Before(monthStart) {
				d.PurchasesThisMonth += t.TotalAmount
			}
		case models.TransactionTypeSale:
			d.TotalSales += t.TotalAmount
			if s.Pending > 0 {
				d.Receivable += s.Pending
			}
			if !t.Date.Before(monthStart) {
				d.SalesThisMonth += t.TotalAmount
			}
			d.TotalProfit += settlement.Profit(t)
		}
	}

	d.TotalPurchases = settlement.Round2(d.TotalPurchases)
	d.TotalSales = settlement.Round2(d.TotalSales)
	d.Receivable = settlement.Round2(d.Receivable)
	d.Payable = settlement.Round2(d.Payable)
	d.TotalProfit = settlement.Round2(d.TotalProfit)
	d.PurchasesThisMonth = settlement.Round2(d.PurchasesThisMonth)
	d.SalesThisMonth = settlement.Round2(d.SalesThisMonth)
	return d
}

// GET /api/stats/dashboard
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var trxs []models.Transaction
		if err := database.DB.Find(&trxs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transactions")
		}

		d := Compute(trxs, time.Now())

		// Stock valued at the weighted average purchase rate.
		stock := inventory.ComputeStock(trxs, map[uint]string{}, map[uint]string{})
		for _, row := range stock {
			if row.QuantityQuintal > 0 {
				d.InventoryValue += row.StockValue
			}
		}
		d.InventoryValue = settlement.Round2(d.InventoryValue)

		return c.JSON(d)
	}
}
