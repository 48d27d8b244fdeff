package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Table is the format-agnostic rendering of a report: exporters turn it
// into CSV or XLSX verbatim and never recompute business numbers.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Totals  []string   `json:"totals"`
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Table flattens a Result into strings. Grouped results use the group
// schema, detail results the full cost-breakdown schema; the totals line
// follows whichever schema is active.
func (r Result) Table(groupBy GroupBy) Table {
	if groupBy != "" && groupBy != GroupByNone {
		t := Table{
			Headers: []string{"Group Name", "Count", "Total Qty", "Total Amount", "Paid", "Pending", "Total Profit"},
		}
		for _, g := range r.Groups {
			t.Rows = append(t.Rows, []string{
				g.Name, strconv.Itoa(g.Count), money(g.Qty), money(g.Amount),
				money(g.Paid), money(g.Pending), money(g.Profit),
			})
		}
		t.Totals = []string{
			"Total", strconv.Itoa(r.Totals.Count), money(r.Totals.Qty), money(r.Totals.Amount),
			money(r.Totals.Paid), money(r.Totals.Pending), money(r.Totals.Profit),
		}
		return t
	}

	t := Table{
		Headers: []string{"Date", "Invoice", "Party", "Grain", "Bags", "Qty", "Rate", "Gross",
			"Short", "Ded", "Lab", "Trans", "Mandi", "Net Realized", "Paid", "Pending", "Status", "Profit"},
	}
	for _, d := range r.Rows {
		t.Rows = append(t.Rows, []string{
			d.Date.Format("2006-01-02"),
			strconv.Itoa(d.InvoiceNumber),
			d.ContactName,
			d.GrainName,
			strconv.Itoa(d.Bags),
			money(d.Qty),
			money(d.RatePerQuintal),
			money(d.BaseAmount),
			money(d.ShortageCost),
			money(d.DeductionCost),
			money(d.LabourCostTotal),
			money(d.TransportCostTotal),
			money(d.MandiCost),
			money(d.NetRealized),
			money(d.PaidAmount),
			money(d.PendingAmount),
			d.Status,
			money(d.Profit),
		})
	}
	t.Totals = []string{
		"Total", strconv.Itoa(r.Totals.Count), "", "", "",
		money(r.Totals.Qty), "",
		money(r.Totals.BaseAmount),
		money(r.Totals.ShortageCost),
		money(r.Totals.DeductionCost),
		money(r.Totals.LabourCostTotal),
		money(r.Totals.TransportCostTotal),
		money(r.Totals.MandiCost),
		money(r.Totals.Amount),
		money(r.Totals.Paid),
		money(r.Totals.Pending),
		"",
		money(r.Totals.Profit),
	}
	return t
}

// TransportTable renders the transport ledger rows.
func TransportTable(rows []TransportRow) Table {
	t := Table{
		Headers: []string{"Date", "Invoice", "Transporter", "Vehicle", "Weight", "Rate",
			"Gross Freight", "Advance", "Delivery", "Shortage Ded", "Other Ded", "Balance", "Status"},
	}
	var gross, advance, delivery, shortDed, otherDed, balance float64
	for _, d := range rows {
		t.Rows = append(t.Rows, []string{
			d.Date.Format("2006-01-02"),
			strconv.Itoa(d.InvoiceNumber),
			d.TransporterName,
			d.VehicleNumber,
			money(d.TotalWeight),
			money(d.Rate),
			money(d.GrossFreight),
			money(d.AdvancePaid),
			money(d.DeliveryPaid),
			money(d.ShortageDeduction),
			money(d.OtherDeduction),
			money(d.BalancePending),
			d.Status,
		})
		gross += d.GrossFreight
		advance += d.AdvancePaid
		delivery += d.DeliveryPaid
		shortDed += d.ShortageDeduction
		otherDed += d.OtherDeduction
		balance += d.BalancePending
	}
	t.Totals = []string{"Total", "", "", "", "", "",
		money(gross), money(advance), money(delivery), money(shortDed), money(otherDed), money(balance), ""}
	return t
}

// WriteCSV renders the table as CSV text.
func WriteCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if len(t.Totals) > 0 {
		if err := w.Write(t.Totals); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildXLSX renders the table as an Excel workbook.
func BuildXLSX(t Table, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, t.Headers); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}
	if len(t.Totals) > 0 {
		if err := writeRow(len(t.Rows)+2, t.Totals); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endHeader, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		_ = f.SetCellStyle(sheet, "A1", endHeader, style)
	}

	return f, nil
}
