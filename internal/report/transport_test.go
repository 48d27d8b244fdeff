package report

import (
	"strings"
	"testing"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportReportJoin(t *testing.T) {
	trxs := []models.Transaction{
		{ID: 10, Type: models.TransactionTypeSale, InvoiceNumber: 7, Date: day("2026-05-01"), SaleGroupID: "g-1"},
		{ID: 11, Type: models.TransactionTypeSale, InvoiceNumber: 7, Date: day("2026-05-01"), SaleGroupID: "g-1"},
		{ID: 12, Type: models.TransactionTypeSale, InvoiceNumber: 8, Date: day("2026-05-15"), SaleGroupID: "g-2"},
	}
	dispatches := []models.DispatchRecord{
		{ID: 1, SaleGroupID: "g-1", TransporterName: "Sharma Transport", TotalWeight: 250, Rate: 200, GrossFreight: 50000, AdvancePaid: 20000},
		{ID: 2, SaleGroupID: "g-2", TotalWeight: 100, Rate: 180, GrossFreight: 18000, AdvancePaid: 18000},
		{ID: 3, SaleGroupID: "g-orphan", GrossFreight: 5000},
	}

	rows := TransportReport(dispatches, trxs)

	// orphan dispatch dropped, newest date first
	require.Len(t, rows, 2)
	assert.Equal(t, uint(2), rows[0].DispatchID)
	assert.Equal(t, 8, rows[0].InvoiceNumber)
	assert.Equal(t, "Unknown", rows[0].TransporterName)
	assert.Equal(t, "paid", rows[0].Status)

	assert.Equal(t, uint(1), rows[1].DispatchID)
	assert.InDelta(t, 30000, rows[1].BalancePending, 1e-9)
	assert.Equal(t, "pending", rows[1].Status)
}

func TestWriteCSV(t *testing.T) {
	table := Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", "x,y"}, {"2", "z"}},
		Totals:  []string{"Total", ""},
	}

	data, err := WriteCSV(table)
	require.NoError(t, err)

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A,B", lines[0])
	assert.Equal(t, `1,"x,y"`, lines[1])
	assert.Equal(t, "Total,", lines[3])
}

func TestBuildXLSX(t *testing.T) {
	table := Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}},
		Totals:  []string{"Total", "2"},
	}

	f, err := BuildXLSX(table, "Report")
	require.NoError(t, err)

	v, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "A", v)

	v, err = f.GetCellValue("Report", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
