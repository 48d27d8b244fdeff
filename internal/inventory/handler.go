// Package inventory derives current stock from the transaction history:
// purchases add grain to a warehouse, sales remove it. There is no
// separate stock table to drift out of sync.
package inventory

import (
	"sort"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"

	"github.com/gofiber/fiber/v2"
)

type StockRow struct {
	GrainID       uint   `json:"grain_id"`
	GrainName     string `json:"grain_name"`
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`

	QuantityQuintal float64 `json:"quantity_quintal"`
	NumberOfBags    int     `json:"number_of_bags"`

	// Weighted average purchase rate over all purchases of this grain in
	// this warehouse, on gross grain value (qty*rate before labour).
	AvgPurchaseRate float64 `json:"avg_purchase_rate"`
	StockValue      float64 `json:"stock_value"`
}

type stockKey struct {
	grainID     uint
	warehouseID uint
}

type stockAcc struct {
	qty       float64
	bags      int
	purchQty  float64
	purchCost float64 // sum of qty*rate over purchases
}

// ComputeStock folds the full transaction history into per grain and
// warehouse positions.
func ComputeStock(trxs []models.Transaction, grains map[uint]string, warehouses map[uint]string) []StockRow {
	acc := map[stockKey]*stockAcc{}
	var order []stockKey

	for _, t := range trxs {
		key := stockKey{grainID: t.GrainID, warehouseID: t.WarehouseID}
		a, ok := acc[key]
		if !ok {
			a = &stockAcc{}
			acc[key] = a
			order = append(order, key)
		}

		switch t.Type {
		case models.TransactionTypePurchase:
			a.qty += t.QuantityQuintal
			a.bags += t.NumberOfBags
			a.purchQty += t.QuantityQuintal
			a.purchCost += t.QuantityQuintal * t.RatePerQuintal
		case models.TransactionTypeSale:
			a.qty -= t.QuantityQuintal
			a.bags -= t.NumberOfBags
		}
	}

	nameOr := func(m map[uint]string, id uint) string {
		if name, ok := m[id]; ok {
			return name
		}
		return "Unknown"
	}

	rows := make([]StockRow, 0, len(order))
	for _, key := range order {
		a := acc[key]
		avgRate := 0.0
		if a.purchQty > 0 {
			avgRate = a.purchCost / a.purchQty
		}
		rows = append(rows, StockRow{
			GrainID:         key.grainID,
			GrainName:       nameOr(grains, key.grainID),
			WarehouseID:     key.warehouseID,
			WarehouseName:   nameOr(warehouses, key.warehouseID),
			QuantityQuintal: settlement.Round2(a.qty),
			NumberOfBags:    a.bags,
			AvgPurchaseRate: settlement.Round2(avgRate),
			StockValue:      settlement.Round2(a.qty * avgRate),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GrainName != rows[j].GrainName {
			return rows[i].GrainName < rows[j].GrainName
		}
		return rows[i].WarehouseName < rows[j].WarehouseName
	})
	return rows
}

// GET /api/inventory?grain_id=...&warehouse_id=...
func StockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Transaction{})
		if grainID := c.QueryInt("grain_id"); grainID > 0 {
			dbq = dbq.Where("grain_id = ?", grainID)
		}
		if whID := c.QueryInt("warehouse_id"); whID > 0 {
			dbq = dbq.Where("warehouse_id = ?", whID)
		}

		var trxs []models.Transaction
		if err := dbq.Find(&trxs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transactions")
		}

		grains := map[uint]string{}
		var grainRows []models.Grain
		if err := database.DB.Find(&grainRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load grains")
		}
		for _, g := range grainRows {
			grains[g.ID] = g.Name
		}

		warehouses := map[uint]string{}
		var whRows []models.Warehouse
		if err := database.DB.Find(&whRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load warehouses")
		}
		for _, w := range whRows {
			warehouses[w.ID] = w.Name
		}

		return c.JSON(ComputeStock(trxs, grains, warehouses))
	}
}
