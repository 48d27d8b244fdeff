package report

import (
	"sort"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/dispatch"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
)

// TransportRow is one transporter ledger line in the transport report,
// a dispatch record joined to its sale group's first transaction for
// date and invoice context.
type TransportRow struct {
	Kind            string    `json:"kind"`
	DispatchID      uint      `json:"dispatch_id"`
	Date            time.Time `json:"date"`
	InvoiceNumber   int       `json:"invoice_number"`
	TransporterName string    `json:"transporter_name"`
	VehicleNumber   string    `json:"vehicle_number"`

	TotalWeight  float64 `json:"total_weight"`
	Rate         float64 `json:"rate"`
	GrossFreight float64 `json:"gross_freight"`

	AdvancePaid       float64 `json:"advance_paid"`
	DeliveryPaid      float64 `json:"delivery_paid"`
	ShortageDeduction float64 `json:"shortage_deduction"`
	OtherDeduction    float64 `json:"other_deduction"`
	TotalDeduction    float64 `json:"total_deduction"`

	BalancePending float64 `json:"balance_pending"`
	Status         string  `json:"status"`
}

// TransportReport joins dispatch records against their sale groups.
// A dispatch whose sale group has no transaction is inconsistent state:
// that single row is dropped, the rest of the report survives. Sorted by
// date descending.
func TransportReport(dispatches []models.DispatchRecord, trxs []models.Transaction) []TransportRow {
	firstByGroup := make(map[string]models.Transaction)
	for _, t := range trxs {
		if t.SaleGroupID == "" {
			continue
		}
		if _, ok := firstByGroup[t.SaleGroupID]; !ok {
			firstByGroup[t.SaleGroupID] = t
		}
	}

	var rows []TransportRow
	for _, d := range dispatches {
		trx, ok := firstByGroup[d.SaleGroupID]
		if !ok {
			continue
		}

		rec := dispatch.Reconcile(d)
		name := d.TransporterName
		if name == "" {
			name = "Unknown"
		}

		rows = append(rows, TransportRow{
			Kind:              RowKindTransport,
			DispatchID:        d.ID,
			Date:              trx.Date,
			InvoiceNumber:     trx.InvoiceNumber,
			TransporterName:   name,
			VehicleNumber:     d.VehicleNumber,
			TotalWeight:       d.TotalWeight,
			Rate:              d.Rate,
			GrossFreight:      d.GrossFreight,
			AdvancePaid:       d.AdvancePaid,
			DeliveryPaid:      d.DeliveryPaid,
			ShortageDeduction: d.ShortageDeduction,
			OtherDeduction:    d.OtherDeduction,
			TotalDeduction:    d.ShortageDeduction + d.OtherDeduction,
			BalancePending:    rec.BalancePending,
			Status:            string(rec.Status),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}
