package billing

import (
	"testing"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTaxIntraState(t *testing.T) {
	b := ComputeTax(200000, 5, "23", "23")

	assert.InDelta(t, 190476.190476, b.TaxableAmount, 1e-4)
	assert.InDelta(t, 9523.809524, b.TotalTax, 1e-4)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, "CGST", b.Lines[0].Name)
	assert.Equal(t, "SGST", b.Lines[1].Name)
	assert.InDelta(t, 2.5, b.Lines[0].Rate, 1e-9)
	assert.InDelta(t, 4761.904762, b.Lines[0].Amount, 1e-4)

	// the two halves are exactly equal
	assert.Equal(t, b.Lines[0].Amount, b.Lines[1].Amount)
}

func TestComputeTaxInterState(t *testing.T) {
	b := ComputeTax(200000, 5, "23", "27")

	require.Len(t, b.Lines, 1)
	assert.Equal(t, "IGST", b.Lines[0].Name)
	assert.InDelta(t, 5, b.Lines[0].Rate, 1e-9)
	assert.InDelta(t, 9523.809524, b.Lines[0].Amount, 1e-4)
}

func TestComputeTaxZeroPercent(t *testing.T) {
	b := ComputeTax(144000, 0, "23", "27")

	assert.Empty(t, b.Lines)
	assert.InDelta(t, 144000, b.TaxableAmount, 1e-9)
	assert.Zero(t, b.TotalTax)
}

// taxable + sum(lines) must reconstruct the grand total.
func TestTaxSumInvariant(t *testing.T) {
	cases := []struct {
		grand   float64
		percent float64
		party   string
	}{
		{200000, 5, "23"},
		{200000, 5, "27"},
		{144000, 12, "23"},
		{99999.99, 18, "09"},
		{131700, 0, "23"},
	}

	for _, tc := range cases {
		b := ComputeTax(tc.grand, tc.percent, "23", tc.party)
		sum := b.TaxableAmount
		for _, line := range b.Lines {
			sum += line.Amount
		}
		assert.InDelta(t, tc.grand, sum, 1e-6)
	}
}

func TestPartyStateCode(t *testing.T) {
	// purchases are always local farm-gate deals
	assert.Equal(t, "23", PartyStateCode(models.TransactionTypePurchase, "27AAAAA0000A1Z5", "23"))

	// sales follow the buyer's GSTIN prefix, defaulting to home state
	assert.Equal(t, "27", PartyStateCode(models.TransactionTypeSale, "27AAAAA0000A1Z5", "23"))
	assert.Equal(t, "23", PartyStateCode(models.TransactionTypeSale, "", "23"))
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "Madhya Pradesh", StateName("23"))
	assert.Equal(t, "Maharashtra", StateName("27"))
	assert.Equal(t, "Unknown", StateName("00"))
}
