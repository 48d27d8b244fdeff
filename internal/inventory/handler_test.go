package inventory

import (
	"testing"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStock(t *testing.T) {
	trxs := []models.Transaction{
		{Type: models.TransactionTypePurchase, GrainID: 1, WarehouseID: 1, QuantityQuintal: 60, NumberOfBags: 100, RatePerQuintal: 2200},
		{Type: models.TransactionTypePurchase, GrainID: 1, WarehouseID: 1, QuantityQuintal: 40, NumberOfBags: 66, RatePerQuintal: 2350},
		{Type: models.TransactionTypeSale, GrainID: 1, WarehouseID: 1, QuantityQuintal: 30, NumberOfBags: 50, RatePerQuintal: 2600},
		{Type: models.TransactionTypePurchase, GrainID: 2, WarehouseID: 1, QuantityQuintal: 24, NumberOfBags: 40, RatePerQuintal: 2800},
	}
	grains := map[uint]string{1: "Wheat", 2: "Chana"}
	warehouses := map[uint]string{1: "Main Godown"}

	rows := ComputeStock(trxs, grains, warehouses)
	require.Len(t, rows, 2)

	chana, wheat := rows[0], rows[1]
	assert.Equal(t, "Chana", chana.GrainName)
	assert.InDelta(t, 24, chana.QuantityQuintal, 1e-9)
	assert.InDelta(t, 2800, chana.AvgPurchaseRate, 1e-9)

	assert.Equal(t, "Wheat", wheat.GrainName)
	assert.InDelta(t, 70, wheat.QuantityQuintal, 1e-9)
	assert.Equal(t, 116, wheat.NumberOfBags)

	// weighted average over purchases only: (60*2200 + 40*2350) / 100
	assert.InDelta(t, 2260, wheat.AvgPurchaseRate, 1e-9)
	assert.InDelta(t, 70*2260, wheat.StockValue, 1e-2)
}

func TestComputeStockUnknownNames(t *testing.T) {
	trxs := []models.Transaction{
		{Type: models.TransactionTypePurchase, GrainID: 9, WarehouseID: 9, QuantityQuintal: 10, RatePerQuintal: 2000},
	}

	rows := ComputeStock(trxs, map[uint]string{}, map[uint]string{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Unknown", rows[0].GrainName)
	assert.Equal(t, "Unknown", rows[0].WarehouseName)
}

func TestComputeStockNegativePosition(t *testing.T) {
	// a sale without a matching purchase leaves a visible negative stock
	trxs := []models.Transaction{
		{Type: models.TransactionTypeSale, GrainID: 1, WarehouseID: 1, QuantityQuintal: 12, RatePerQuintal: 2600},
	}

	rows := ComputeStock(trxs, map[uint]string{1: "Wheat"}, map[uint]string{1: "Main Godown"})
	require.Len(t, rows, 1)
	assert.InDelta(t, -12, rows[0].QuantityQuintal, 1e-9)
	assert.Zero(t, rows[0].AvgPurchaseRate)
}
