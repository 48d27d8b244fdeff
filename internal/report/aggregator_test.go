package report

import (
	"testing"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d string) time.Time {
	t, _ := time.Parse("2006-01-02", d)
	return t
}

func fixtureLookups() Lookups {
	return Lookups{
		Grains:     map[uint]string{1: "Wheat", 2: "Chana"},
		Contacts:   map[uint]string{1: "Ramesh Traders", 2: "Gupta and Sons"},
		Warehouses: map[uint]string{1: "Main Godown"},
	}
}

func fixtureTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID: 1, Type: models.TransactionTypePurchase, InvoiceNumber: 1,
			Date: day("2026-04-02"), ContactID: 1, GrainID: 1, WarehouseID: 1,
			NumberOfBags: 100, QuantityQuintal: 60, RatePerQuintal: 2200,
			TotalAmount: 131700, LabourCostPerBag: 3, AmountPaid: 131700,
		},
		{
			ID: 2, Type: models.TransactionTypeSale, InvoiceNumber: 1,
			Date: day("2026-04-10"), ContactID: 2, GrainID: 1, WarehouseID: 1,
			NumberOfBags: 50, QuantityQuintal: 30, RatePerQuintal: 2500,
			TotalAmount: 75000, CostPricePerQuintal: 2200, AmountPaid: 40000,
		},
		{
			ID: 3, Type: models.TransactionTypeSale, InvoiceNumber: 2,
			Date: day("2026-04-20"), ContactID: 2, GrainID: 2, WarehouseID: 1,
			NumberOfBags: 40, QuantityQuintal: 24, RatePerQuintal: 3000,
			TotalAmount: 72000, CostPricePerQuintal: 2800,
			ShortageQuantity: 1, DeductionAmount: 500,
		},
	}
}

func TestRunTypeFilter(t *testing.T) {
	trxs := fixtureTransactions()
	lk := fixtureLookups()

	res := Run(trxs, lk, Query{ReportType: ReportTypePurchase})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "purchase", res.Rows[0].Type)

	// profit analysis implies sales only
	res = Run(trxs, lk, Query{ReportType: ReportTypeProfit})
	require.Len(t, res.Rows, 2)
	for _, r := range res.Rows {
		assert.Equal(t, "sale", r.Type)
	}
}

func TestRunDateRangeInclusive(t *testing.T) {
	trxs := fixtureTransactions()
	start := day("2026-04-10")
	end := day("2026-04-20")

	res := Run(trxs, fixtureLookups(), Query{ReportType: ReportTypeAll, StartDate: &start, EndDate: &end})

	// both boundary days included
	require.Len(t, res.Rows, 2)
	assert.Equal(t, uint(2), res.Rows[0].TransactionID)
	assert.Equal(t, uint(3), res.Rows[1].TransactionID)
}

func TestRunSearch(t *testing.T) {
	trxs := fixtureTransactions()

	res := Run(trxs, fixtureLookups(), Query{ReportType: ReportTypeAll, Search: "gupta"})
	require.Len(t, res.Rows, 2)

	res = Run(trxs, fixtureLookups(), Query{ReportType: ReportTypeAll, Search: "ramesh"})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Ramesh Traders", res.Rows[0].ContactName)
}

func TestRunStatusFilter(t *testing.T) {
	trxs := fixtureTransactions()

	res := Run(trxs, fixtureLookups(), Query{ReportType: ReportTypeAll, Status: "paid"})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, uint(1), res.Rows[0].TransactionID)

	res = Run(trxs, fixtureLookups(), Query{ReportType: ReportTypeAll, Status: "pending"})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, uint(3), res.Rows[0].TransactionID)
}

func TestRunEnrichment(t *testing.T) {
	trxs := fixtureTransactions()

	res := Run(trxs, fixtureLookups(), Query{ReportType: ReportTypeSale})
	require.Len(t, res.Rows, 2)

	withCuts := res.Rows[1]
	assert.Equal(t, 2, withCuts.InvoiceNumber)
	assert.InDelta(t, 3000, withCuts.ShortageCost, 1e-9) // 1 qtl * 3000
	assert.InDelta(t, 500, withCuts.DeductionCost, 1e-9)
	assert.InDelta(t, 68500, withCuts.NetRealized, 1e-9)
	assert.InDelta(t, 68500, withCuts.PendingAmount, 1e-9)
	assert.InDelta(t, 68500-2800*24, withCuts.Profit, 1e-9)
}

func TestRunUnknownLookupFallback(t *testing.T) {
	trxs := fixtureTransactions()

	res := Run(trxs, Lookups{Grains: map[uint]string{}, Contacts: map[uint]string{}, Warehouses: map[uint]string{}},
		Query{ReportType: ReportTypeAll})

	require.NotEmpty(t, res.Rows)
	for _, r := range res.Rows {
		assert.Equal(t, "Unknown", r.GrainName)
		assert.Equal(t, "Unknown", r.ContactName)
		assert.Equal(t, "Unknown", r.WarehouseName)
	}
}

// Grouping must redistribute, never change, the filtered totals.
func TestGroupedTotalsMatchUngrouped(t *testing.T) {
	trxs := fixtureTransactions()
	lk := fixtureLookups()

	flat := Run(trxs, lk, Query{ReportType: ReportTypeAll})

	for _, by := range []GroupBy{GroupByGrain, GroupByParty, GroupByWarehouse} {
		grouped := Run(trxs, lk, Query{ReportType: ReportTypeAll, GroupBy: by})
		assert.Equal(t, flat.Totals, grouped.Totals, "group_by %s", by)

		var qty, amount, paid, pending, profit float64
		var count int
		for _, g := range grouped.Groups {
			count += g.Count
			qty += g.Qty
			amount += g.Amount
			paid += g.Paid
			pending += g.Pending
			profit += g.Profit
		}
		assert.Equal(t, flat.Totals.Count, count)
		assert.InDelta(t, flat.Totals.Qty, qty, 1e-9)
		assert.InDelta(t, flat.Totals.Amount, amount, 1e-9)
		assert.InDelta(t, flat.Totals.Paid, paid, 1e-9)
		assert.InDelta(t, flat.Totals.Pending, pending, 1e-9)
		assert.InDelta(t, flat.Totals.Profit, profit, 1e-9)
	}
}

func TestRunSortAndLimit(t *testing.T) {
	trxs := fixtureTransactions()
	lk := fixtureLookups()

	res := Run(trxs, lk, Query{ReportType: ReportTypeSale, SortDesc: true})
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 2, res.Rows[0].InvoiceNumber)
	assert.Equal(t, 1, res.Rows[1].InvoiceNumber)

	// totals cover the full set even when the row list is capped
	res = Run(trxs, lk, Query{ReportType: ReportTypeSale, Limit: 1})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 2, res.Totals.Count)
}

func TestTableGroupedAndDetailSchemas(t *testing.T) {
	trxs := fixtureTransactions()
	lk := fixtureLookups()

	flat := Run(trxs, lk, Query{ReportType: ReportTypeAll})
	table := flat.Table(GroupByNone)
	require.Len(t, table.Rows, len(flat.Rows))
	assert.Equal(t, len(table.Headers), len(table.Rows[0]))
	assert.Equal(t, len(table.Headers), len(table.Totals))

	grouped := Run(trxs, lk, Query{ReportType: ReportTypeAll, GroupBy: GroupByGrain})
	gtable := grouped.Table(GroupByGrain)
	require.Len(t, gtable.Rows, len(grouped.Groups))
	assert.Equal(t, len(gtable.Headers), len(gtable.Rows[0]))
}
