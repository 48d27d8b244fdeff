package stats

import (
	"testing"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

	trxs := []models.Transaction{
		{
			Type: models.TransactionTypePurchase, Date: lastMonth,
			TotalAmount: 131700, AmountPaid: 100000,
		},
		{
			Type: models.TransactionTypeSale, Date: thisMonth,
			QuantityQuintal: 30, RatePerQuintal: 2500, TotalAmount: 75000,
			CostPricePerQuintal: 2200, AmountPaid: 40000,
		},
	}

	d := Compute(trxs, now)

	assert.InDelta(t, 131700, d.TotalPurchases, 1e-9)
	assert.InDelta(t, 75000, d.TotalSales, 1e-9)
	assert.InDelta(t, 31700, d.Payable, 1e-9)
	assert.InDelta(t, 35000, d.Receivable, 1e-9)
	assert.InDelta(t, 75000-2200*30, d.TotalProfit, 1e-9)

	// month boundaries
	assert.Zero(t, d.PurchasesThisMonth)
	assert.InDelta(t, 75000, d.SalesThisMonth, 1e-9)
}

func TestComputeSettledBooksHaveNoBalances(t *testing.T) {
	now := time.Now()
	trxs := []models.Transaction{
		{Type: models.TransactionTypePurchase, Date: now, TotalAmount: 50000, AmountPaid: 50000},
		{Type: models.TransactionTypeSale, Date: now, TotalAmount: 60000, AmountPaid: 60000},
	}

	d := Compute(trxs, now)
	assert.Zero(t, d.Payable)
	assert.Zero(t, d.Receivable)
}
