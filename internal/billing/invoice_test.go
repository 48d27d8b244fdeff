package billing

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/config"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		FirmName:      "Nagariya Traders",
		FirmAddress:   "Mandi Road, Vidisha",
		GSTIN:         "23ABCDE1234F1Z5",
		HomeStateCode: "23",
		HomeStateName: "Madhya Pradesh",
		BankName:      "SBI",
		BankAccountNo: "1234567890",
		BankIFSC:      "SBIN0000001",
	}
}

func TestBuildInvoiceSingleSale(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-04-10")
	rows := []models.Transaction{{
		Type: models.TransactionTypeSale, InvoiceNumber: 12, Date: date,
		NumberOfBags: 50, QuantityQuintal: 30, RatePerQuintal: 2500,
		TotalAmount: 75000, TaxPercentage: 5, AmountPaid: 40000,
	}}
	contact := models.Contact{Name: "Gupta and Sons", GSTNumber: "27AAAAA0000A1Z5"}
	grain := models.Grain{Name: "Wheat", HindiName: "Gehu"}

	inv := BuildInvoice(testConfig(), rows, contact, grain, nil)

	assert.Equal(t, 12, inv.InvoiceNumber)
	assert.False(t, inv.IsPurchase)
	assert.Equal(t, "Maharashtra, Code: 27", inv.PartyState)

	require.Len(t, inv.Lines, 1)
	assert.Equal(t, 60.0, inv.Lines[0].Bharti) // 30 qtl over 50 bags
	assert.InDelta(t, 75000, inv.GrandTotal, 1e-9)

	// inter-state buyer gets a single IGST line
	require.Len(t, inv.Tax.Lines, 1)
	assert.Equal(t, "IGST", inv.Tax.Lines[0].Name)

	assert.Equal(t, models.PaymentStatusPartial, inv.Status)
	assert.InDelta(t, 35000, inv.Pending, 1e-9)
}

func TestBuildInvoiceGroupSumsRows(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-04-10")
	rows := []models.Transaction{
		{
			Type: models.TransactionTypeSale, InvoiceNumber: 12, Date: date, SaleGroupID: "g-1",
			NumberOfBags: 50, QuantityQuintal: 30, RatePerQuintal: 2500, TotalAmount: 75000,
			ShortageQuantity: 1, AmountPaid: 30000,
		},
		{
			Type: models.TransactionTypeSale, InvoiceNumber: 12, Date: date, SaleGroupID: "g-1",
			NumberOfBags: 20, QuantityQuintal: 12, RatePerQuintal: 2500, TotalAmount: 30000,
		},
	}
	contact := models.Contact{Name: "Gupta and Sons"}
	grain := models.Grain{Name: "Wheat"}

	inv := BuildInvoice(testConfig(), rows, contact, grain, nil)

	require.Len(t, inv.Lines, 2)
	assert.InDelta(t, 105000, inv.GrandTotal, 1e-9)

	// effective nets the first row's shortage: 105000 - 1*2500
	assert.InDelta(t, 102500, inv.EffectiveTotal, 1e-9)
	assert.InDelta(t, 72500, inv.Pending, 1e-9)
	assert.Equal(t, "Unregistered", inv.PartyGSTIN)
}

// Invoices are party-facing: acquisition cost and profit must never
// appear anywhere in the serialized bill.
func TestInvoiceCarriesNoProfitFields(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-04-10")
	rows := []models.Transaction{{
		Type: models.TransactionTypeSale, InvoiceNumber: 12, Date: date,
		QuantityQuintal: 30, RatePerQuintal: 2500, TotalAmount: 75000,
		CostPricePerQuintal: 2200,
	}}

	inv := BuildInvoice(testConfig(), rows, models.Contact{Name: "X"}, models.Grain{Name: "Wheat"}, nil)

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	lower := strings.ToLower(string(data))
	assert.NotContains(t, lower, "profit")
	assert.NotContains(t, lower, "cost_price")
	assert.NotContains(t, lower, "2200")
}

func TestRenderHTML(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-04-10")
	rows := []models.Transaction{{
		Type: models.TransactionTypeSale, InvoiceNumber: 12, Date: date,
		NumberOfBags: 50, QuantityQuintal: 30, RatePerQuintal: 2500,
		TotalAmount: 75000, TaxPercentage: 5,
	}}

	inv := BuildInvoice(testConfig(), rows, models.Contact{Name: "Gupta and Sons"}, models.Grain{Name: "Wheat"}, nil)

	html, err := RenderHTML(inv)
	require.NoError(t, err)
	assert.Contains(t, html, "Nagariya Traders")
	assert.Contains(t, html, "Gupta and Sons")
	assert.Contains(t, html, "Wheat")
}
