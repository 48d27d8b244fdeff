package settlement

import (
	"testing"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCostsItemized(t *testing.T) {
	trx := models.Transaction{
		Type:                models.TransactionTypeSale,
		QuantityQuintal:     60,
		NumberOfBags:        100,
		RatePerQuintal:      2400,
		TotalAmount:         144000,
		ShortageQuantity:    0.5,
		DeductionAmount:     1200,
		LabourCostPerBag:    3,
		TransportCostPerQtl: 50,
		MandiCost:           800,
	}

	c := Costs(trx)
	assert.InDelta(t, 1200, c.ShortageCost, 1e-9) // 0.5 * 2400
	assert.InDelta(t, 1200, c.DeductionCost, 1e-9)
	assert.InDelta(t, 300, c.LabourCostTotal, 1e-9) // 100 * 3
	assert.InDelta(t, 3000, c.TransportCostTotal, 1e-9)
	assert.InDelta(t, 800, c.MandiCost, 1e-9)
}

func TestNetRealizedSale(t *testing.T) {
	trx := models.Transaction{
		Type:                models.TransactionTypeSale,
		QuantityQuintal:     60,
		NumberOfBags:        100,
		RatePerQuintal:      2400,
		TotalAmount:         144000,
		ShortageQuantity:    0.5,
		DeductionAmount:     1200,
		LabourCostPerBag:    3,
		TransportCostPerQtl: 50,
		MandiCost:           800,
	}

	// 144000 - 1200 - 1200 - 300 - 3000 - 800
	assert.InDelta(t, 137500, NetRealized(trx), 1e-9)
}

func TestNetRealizedPurchaseIsTotal(t *testing.T) {
	trx := models.Transaction{
		Type:        models.TransactionTypePurchase,
		TotalAmount: 131700,
		MandiCost:   500,
	}
	assert.InDelta(t, 131700, NetRealized(trx), 1e-9)
}

func TestProfit(t *testing.T) {
	trx := models.Transaction{
		Type:                models.TransactionTypeSale,
		QuantityQuintal:     60,
		RatePerQuintal:      2400,
		TotalAmount:         144000,
		CostPricePerQuintal: 2200,
	}

	// net realized 144000 minus acquisition 60*2200
	assert.InDelta(t, 12000, Profit(trx), 1e-9)

	trx.Type = models.TransactionTypePurchase
	assert.Zero(t, Profit(trx))
}
