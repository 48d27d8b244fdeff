// Package report filters, enriches, groups and totals transaction sets
// into report rows for the analytics views and the CSV/XLSX exporters.
// Everything here is pure: inputs are snapshots, outputs are derived
// values, and a single malformed transaction can never abort a batch.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"
)

type ReportType string

const (
	ReportTypeAll      ReportType = "all"
	ReportTypePurchase ReportType = "purchase"
	ReportTypeSale     ReportType = "sale"
	ReportTypeProfit   ReportType = "profit" // profit analysis implies sales
)

type GroupBy string

const (
	GroupByNone      GroupBy = "none"
	GroupByGrain     GroupBy = "grain"
	GroupByParty     GroupBy = "party"
	GroupByWarehouse GroupBy = "warehouse"
)

// Row kind discriminants so export/UI consumers can switch exhaustively.
const (
	RowKindDetail    = "detail"
	RowKindGroup     = "group"
	RowKindTransport = "transport"
)

type Query struct {
	ReportType ReportType `json:"report_type"`
	Status     string     `json:"status"` // all, paid, partial, pending
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Search     string     `json:"search_query"`
	GroupBy    GroupBy    `json:"group_by"`
	SortDesc   bool       `json:"sort_desc"`
	Limit      int        `json:"-"` // detail rows only; 0 means unlimited
}

// Lookups are id->name maps for master data. Missing entries degrade to
// "Unknown" so reports stay viewable with stale master data.
type Lookups struct {
	Grains     map[uint]string
	Contacts   map[uint]string
	Warehouses map[uint]string
}

func nameOr(m map[uint]string, id uint) string {
	if name, ok := m[id]; ok {
		return name
	}
	return "Unknown"
}

// DetailRow is one enriched transaction in the ungrouped report.
type DetailRow struct {
	Kind          string    `json:"kind"`
	TransactionID uint      `json:"transaction_id"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	InvoiceNumber int       `json:"invoice_number"`
	ContactName   string    `json:"contact_name"`
	GrainName     string    `json:"grain_name"`
	WarehouseName string    `json:"warehouse_name"`

	Bags           int     `json:"bags"`
	Qty            float64 `json:"quantity_quintal"`
	RatePerQuintal float64 `json:"rate_per_quintal"`
	BaseAmount     float64 `json:"base_amount"` // qty * rate

	ShortageCost       float64 `json:"shortage_cost"`
	DeductionCost      float64 `json:"deduction_cost"`
	LabourCostTotal    float64 `json:"labour_cost_total"`
	TransportCostTotal float64 `json:"transport_cost_total"`
	MandiCost          float64 `json:"mandi_cost"`

	NetRealized   float64 `json:"net_realized"`
	PaidAmount    float64 `json:"paid_amount"`
	PendingAmount float64 `json:"pending_amount"`
	Status        string  `json:"status"`
	Profit        float64 `json:"profit"`
}

// GroupRow is one aggregate per distinct grouping key.
type GroupRow struct {
	Kind    string  `json:"kind"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Qty     float64 `json:"qty"`
	Amount  float64 `json:"amount"` // summed net realized
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Profit  float64 `json:"profit"`
}

// Totals is the elementwise sum over the full filtered set (never a
// re-sum of group subtotals).
type Totals struct {
	Count              int     `json:"count"`
	Qty                float64 `json:"qty"`
	BaseAmount         float64 `json:"base_amount"`
	ShortageCost       float64 `json:"shortage_cost"`
	DeductionCost      float64 `json:"deduction_cost"`
	LabourCostTotal    float64 `json:"labour_cost_total"`
	TransportCostTotal float64 `json:"transport_cost_total"`
	MandiCost          float64 `json:"mandi_cost"`
	Amount             float64 `json:"amount"`
	Paid               float64 `json:"paid"`
	Pending            float64 `json:"pending"`
	Profit             float64 `json:"profit"`
}

type Result struct {
	Rows   []DetailRow `json:"rows"`
	Groups []GroupRow  `json:"groups,omitempty"`
	Totals Totals      `json:"totals"`
}

// Run applies the filter pipeline (type, report-type, date range, search,
// status), enriches every surviving transaction, then groups or sorts.
// Date bounds are inclusive at day granularity: start from 00:00, end
// through 23:59:59.
func Run(trxs []models.Transaction, lk Lookups, q Query) Result {
	var rows []DetailRow

	for _, t := range trxs {
		switch q.ReportType {
		case ReportTypePurchase:
			if t.Type != models.TransactionTypePurchase {
				continue
			}
		case ReportTypeSale, ReportTypeProfit:
			if t.Type != models.TransactionTypeSale {
				continue
			}
		}

		if q.StartDate != nil {
			s := time.Date(q.StartDate.Year(), q.StartDate.Month(), q.StartDate.Day(), 0, 0, 0, 0, q.StartDate.Location())
			if t.Date.Before(s) {
				continue
			}
		}
		if q.EndDate != nil {
			e := time.Date(q.EndDate.Year(), q.EndDate.Month(), q.EndDate.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), q.EndDate.Location())
			if t.Date.After(e) {
				continue
			}
		}

		contactName := nameOr(lk.Contacts, t.ContactID)

		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			inv := strconv.Itoa(t.InvoiceNumber)
			if !strings.Contains(strings.ToLower(contactName), needle) && !strings.Contains(inv, needle) {
				continue
			}
		}

		s := settlement.Settle(t)
		if q.Status != "" && q.Status != "all" && q.Status != string(s.Status) {
			continue
		}

		c := settlement.Costs(t)
		rows = append(rows, DetailRow{
			Kind:               RowKindDetail,
			TransactionID:      t.ID,
			Date:               t.Date,
			Type:               string(t.Type),
			InvoiceNumber:      t.InvoiceNumber,
			ContactName:        contactName,
			GrainName:          nameOr(lk.Grains, t.GrainID),
			WarehouseName:      nameOr(lk.Warehouses, t.WarehouseID),
			Bags:               t.NumberOfBags,
			Qty:                t.QuantityQuintal,
			RatePerQuintal:     t.RatePerQuintal,
			BaseAmount:         t.QuantityQuintal * t.RatePerQuintal,
			ShortageCost:       c.ShortageCost,
			DeductionCost:      c.DeductionCost,
			LabourCostTotal:    c.LabourCostTotal,
			TransportCostTotal: c.TransportCostTotal,
			MandiCost:          c.MandiCost,
			NetRealized:        settlement.NetRealized(t),
			PaidAmount:         t.AmountPaid,
			PendingAmount:      s.Pending,
			Status:             string(s.Status),
			Profit:             settlement.Profit(t),
		})
	}

	res := Result{Totals: sumTotals(rows)}

	if q.GroupBy != "" && q.GroupBy != GroupByNone {
		res.Groups = groupRows(rows, q.GroupBy)
		return res
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if q.SortDesc {
			return rows[i].InvoiceNumber > rows[j].InvoiceNumber
		}
		return rows[i].InvoiceNumber < rows[j].InvoiceNumber
	})
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	res.Rows = rows
	return res
}

func sumTotals(rows []DetailRow) Totals {
	var t Totals
	for _, r := range rows {
		t.Count++
		t.Qty += r.Qty
		t.BaseAmount += r.BaseAmount
		t.ShortageCost += r.ShortageCost
		t.DeductionCost += r.DeductionCost
		t.LabourCostTotal += r.LabourCostTotal
		t.TransportCostTotal += r.TransportCostTotal
		t.MandiCost += r.MandiCost
		t.Amount += r.NetRealized
		t.Paid += r.PaidAmount
		t.Pending += r.PendingAmount
		t.Profit += r.Profit
	}
	return t
}

func groupRows(rows []DetailRow, by GroupBy) []GroupRow {
	index := make(map[string]int)
	var groups []GroupRow

	for _, r := range rows {
		key := "All"
		switch by {
		case GroupByGrain:
			key = r.GrainName
		case GroupByParty:
			key = r.ContactName
		case GroupByWarehouse:
			key = r.WarehouseName
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, GroupRow{Kind: RowKindGroup, Name: key})
		}
		groups[i].Count++
		groups[i].Qty += r.Qty
		groups[i].Amount += r.NetRealized
		groups[i].Paid += r.PaidAmount
		groups[i].Pending += r.PendingAmount
		groups[i].Profit += r.Profit
	}
	return groups
}
