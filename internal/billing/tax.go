// Package billing computes the GST split and builds the invoice view
// model for a transaction's bill. Invoice structures are party-facing:
// they must never carry acquisition cost or profit fields.
package billing

import (
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
)

// gstStateNames maps the first two digits of a GSTIN to the state name.
var gstStateNames = map[string]string{
	"01": "Jammu and Kashmir", "02": "Himachal Pradesh", "03": "Punjab", "04": "Chandigarh", "05": "Uttarakhand",
	"06": "Haryana", "07": "Delhi", "08": "Rajasthan", "09": "Uttar Pradesh", "10": "Bihar",
	"11": "Sikkim", "12": "Arunachal Pradesh", "13": "Nagaland", "14": "Manipur", "15": "Mizoram",
	"16": "Tripura", "17": "Meghalaya", "18": "Assam", "19": "West Bengal", "20": "Jharkhand",
	"21": "Odisha", "22": "Chhattisgarh", "23": "Madhya Pradesh", "24": "Gujarat",
	"25": "Daman and Diu", "26": "Dadra and Nagar Haveli", "27": "Maharashtra",
	"28": "Andhra Pradesh", "29": "Karnataka", "30": "Goa", "31": "Lakshadweep", "32": "Kerala",
	"33": "Tamil Nadu", "34": "Puducherry", "35": "Andaman and Nicobar Islands", "36": "Telangana",
	"37": "Andhra Pradesh (New)", "38": "Ladakh", "97": "Other Territory", "99": "Centre Jurisdiction",
}

// StateName resolves a 2-digit GST state code to its name.
func StateName(code string) string {
	if name, ok := gstStateNames[code]; ok {
		return name
	}
	return "Unknown"
}

type TaxLine struct {
	Name   string  `json:"name"` // CGST, SGST or IGST
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type TaxBreakdown struct {
	TaxableAmount float64   `json:"taxable_amount"`
	TotalTax      float64   `json:"total_tax"`
	Lines         []TaxLine `json:"lines"`
}

// ComputeTax extracts the taxable base from a tax-inclusive grand total
// and splits the tax: CGST+SGST halves when the party is in the home
// state, IGST otherwise. A zero tax percentage yields no tax lines.
// Results are not rounded here; rounding belongs to the presentation
// boundary.
func ComputeTax(grandTotal, taxPercent float64, homeStateCode, partyStateCode string) TaxBreakdown {
	taxable := grandTotal / (1 + taxPercent/100)
	totalTax := grandTotal - taxable

	b := TaxBreakdown{TaxableAmount: taxable, TotalTax: totalTax}
	if taxPercent == 0 {
		return b
	}

	if partyStateCode == homeStateCode {
		b.Lines = []TaxLine{
			{Name: "CGST", Rate: taxPercent / 2, Amount: totalTax / 2},
			{Name: "SGST", Rate: taxPercent / 2, Amount: totalTax / 2},
		}
	} else {
		b.Lines = []TaxLine{
			{Name: "IGST", Rate: taxPercent, Amount: totalTax},
		}
	}
	return b
}

// PartyStateCode resolves the counterparty's GST state. Purchases are
// billed as self-supply, so the party state is always the home state.
// For sales the state comes from the first two characters of the buyer's
// GST number, defaulting to home when absent or malformed.
func PartyStateCode(trxType models.TransactionType, gstNumber, homeStateCode string) string {
	if trxType == models.TransactionTypePurchase {
		return homeStateCode
	}
	if len(gstNumber) < 2 {
		return homeStateCode
	}
	return gstNumber[:2]
}
