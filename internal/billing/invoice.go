package billing

import (
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/config"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"
)

// InvoiceLine is one warehouse-allocation row of the bill. Bharti is
// back-calculated from quintals and bags for display.
type InvoiceLine struct {
	SrNo      int     `json:"sr_no"`
	GrainName string  `json:"grain_name"`
	HindiName string  `json:"hindi_name"`
	Bags      int     `json:"bags"`
	Bharti    float64 `json:"bharti"`
	Quantity  float64 `json:"quantity_quintal"`
	Rate      float64 `json:"rate_per_quintal"`
	Amount    float64 `json:"amount"`
}

type InvoicePayment struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Invoice is the party-facing bill for one transaction (or one bulk-sale
// group). It deliberately carries no acquisition cost and no profit:
// those are internal figures and must not reach the renderer.
type Invoice struct {
	InvoiceNumber int    `json:"invoice_number"`
	Date          string `json:"date"`
	IsPurchase    bool   `json:"is_purchase"`

	FirmName    string `json:"firm_name"`
	FirmAddress string `json:"firm_address"`
	FirmGSTIN   string `json:"firm_gstin"`
	FirmState   string `json:"firm_state"`

	PartyName  string `json:"party_name"`
	PartyGSTIN string `json:"party_gstin"`
	PartyState string `json:"party_state"`

	Lines      []InvoiceLine `json:"lines"`
	GrandTotal float64       `json:"grand_total"`
	Tax        TaxBreakdown  `json:"tax"`

	Payments       []InvoicePayment     `json:"payments"`
	EffectiveTotal float64              `json:"effective_total"`
	AmountPaid     float64              `json:"amount_paid"`
	Pending        float64              `json:"pending"`
	Status         models.PaymentStatus `json:"status"`

	AmountWords string `json:"amount_words"`

	BankName      string `json:"bank_name"`
	BankAccountNo string `json:"bank_account_no"`
	BankIFSC      string `json:"bank_ifsc"`
	BankHolder    string `json:"bank_holder"`
}

// BuildInvoice assembles the bill for a group of transaction rows (a
// single transaction arrives as a one-element slice). The first row
// carries the shared header fields; settlement nets against the group's
// summed totals.
func BuildInvoice(cfg *config.Config, rows []models.Transaction, contact models.Contact, grain models.Grain, payments []models.PaymentRecord) Invoice {
	main := rows[0]
	isPurchase := main.Type == models.TransactionTypePurchase

	partyState := PartyStateCode(main.Type, contact.GSTNumber, cfg.HomeStateCode)

	inv := Invoice{
		InvoiceNumber: main.InvoiceNumber,
		Date:          main.Date.Format("2006-01-02"),
		IsPurchase:    isPurchase,
		FirmName:      cfg.FirmName,
		FirmAddress:   cfg.FirmAddress,
		FirmGSTIN:     cfg.GSTIN,
		FirmState:     cfg.HomeStateName + ", Code: " + cfg.HomeStateCode,
		PartyName:     contact.Name,
		PartyGSTIN:    contact.GSTNumber,
		PartyState:    StateName(partyState) + ", Code: " + partyState,
		BankName:      cfg.BankName,
		BankAccountNo: cfg.BankAccountNo,
		BankIFSC:      cfg.BankIFSC,
		BankHolder:    cfg.BankHolder,
	}
	if inv.PartyGSTIN == "" {
		inv.PartyGSTIN = "Unregistered"
	}

	grandTotal := 0.0
	totalPaid := 0.0
	effective := 0.0
	for i, r := range rows {
		bharti := 0.0
		if r.NumberOfBags > 0 {
			bharti = settlement.Round2(r.QuantityQuintal * 100 / float64(r.NumberOfBags))
		}
		inv.Lines = append(inv.Lines, InvoiceLine{
			SrNo:      i + 1,
			GrainName: grain.Name,
			HindiName: grain.HindiName,
			Bags:      r.NumberOfBags,
			Bharti:    bharti,
			Quantity:  settlement.Round2(r.QuantityQuintal),
			Rate:      settlement.Round2(r.RatePerQuintal),
			Amount:    settlement.Round2(r.QuantityQuintal * r.RatePerQuintal),
		})
		grandTotal += r.TotalAmount
		totalPaid += r.AmountPaid
		effective += settlement.EffectiveTotal(r)
	}

	inv.GrandTotal = settlement.Round2(grandTotal)
	inv.EffectiveTotal = settlement.Round2(effective)
	inv.AmountPaid = settlement.Round2(totalPaid)
	inv.Pending = settlement.Round2(effective - totalPaid)

	inv.Status = models.PaymentStatusPending
	switch {
	case totalPaid >= effective-settlement.Tolerance:
		inv.Status = models.PaymentStatusPaid
	case totalPaid > 0:
		inv.Status = models.PaymentStatusPartial
	}

	tax := ComputeTax(grandTotal, main.TaxPercentage, cfg.HomeStateCode, partyState)
	inv.Tax = TaxBreakdown{
		TaxableAmount: settlement.Round2(tax.TaxableAmount),
		TotalTax:      settlement.Round2(tax.TotalTax),
	}
	for _, l := range tax.Lines {
		inv.Tax.Lines = append(inv.Tax.Lines, TaxLine{Name: l.Name, Rate: l.Rate, Amount: settlement.Round2(l.Amount)})
	}

	for _, p := range payments {
		inv.Payments = append(inv.Payments, InvoicePayment{
			Date:   p.Date.Format("2006-01-02"),
			Amount: settlement.Round2(p.Amount),
		})
	}

	inv.AmountWords = AmountInWords(grandTotal)
	return inv
}

// GeneratedAt is the print timestamp shown in the HTML footer.
func (i Invoice) GeneratedAt() string {
	return time.Now().Format("02 Jan 2006")
}
