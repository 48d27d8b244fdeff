package report

import (
	"fmt"
	"time"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/gofiber/fiber/v2"
)

const detailRowLimit = 500

type QueryRequest struct {
	ReportType string `json:"report_type"` // all, purchase, sale, profit
	Status     string `json:"status"`      // all, paid, partial, pending
	StartDate  string `json:"start_date"`  // "2006-01-02"
	EndDate    string `json:"end_date"`
	Search     string `json:"search_query"`
	GroupBy    string `json:"group_by"` // none, grain, party, warehouse
	SortDesc   bool   `json:"sort_desc"`
}

func (req QueryRequest) toQuery() (Query, error) {
	q := Query{
		ReportType: ReportTypeAll,
		Status:     req.Status,
		Search:     req.Search,
		GroupBy:    GroupByNone,
		SortDesc:   req.SortDesc,
	}

	switch ReportType(req.ReportType) {
	case "", ReportTypeAll:
	case ReportTypePurchase, ReportTypeSale, ReportTypeProfit:
		q.ReportType = ReportType(req.ReportType)
	default:
		return q, fmt.Errorf("report_type must be one of all, purchase, sale, profit")
	}

	switch GroupBy(req.GroupBy) {
	case "", GroupByNone:
	case GroupByGrain, GroupByParty, GroupByWarehouse:
		q.GroupBy = GroupBy(req.GroupBy)
	default:
		return q, fmt.Errorf("group_by must be one of none, grain, party, warehouse")
	}

	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return q, fmt.Errorf("start_date must be 'YYYY-MM-DD'")
		}
		q.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return q, fmt.Errorf("end_date must be 'YYYY-MM-DD'")
		}
		q.EndDate = &d
	}

	return q, nil
}

func loadLookups() (Lookups, error) {
	lk := Lookups{
		Grains:     map[uint]string{},
		Contacts:   map[uint]string{},
		Warehouses: map[uint]string{},
	}

	var grains []models.Grain
	if err := database.DB.Find(&grains).Error; err != nil {
		return lk, err
	}
	for _, g := range grains {
		lk.Grains[g.ID] = g.Name
	}

	var contacts []models.Contact
	if err := database.DB.Find(&contacts).Error; err != nil {
		return lk, err
	}
	for _, ct := range contacts {
		lk.Contacts[ct.ID] = ct.Name
	}

	var warehouses []models.Warehouse
	if err := database.DB.Find(&warehouses).Error; err != nil {
		return lk, err
	}
	for _, w := range warehouses {
		lk.Warehouses[w.ID] = w.Name
	}

	return lk, nil
}

func runQuery(c *fiber.Ctx, limit int) (Result, Query, error) {
	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return Result{}, Query{}, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	q, err := req.toQuery()
	if err != nil {
		return Result{}, Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	q.Limit = limit

	var trxs []models.Transaction
	if err := database.DB.Find(&trxs).Error; err != nil {
		return Result{}, Query{}, fiber.NewError(fiber.StatusInternalServerError, "Could not load transactions")
	}

	lk, err := loadLookups()
	if err != nil {
		return Result{}, Query{}, fiber.NewError(fiber.StatusInternalServerError, "Could not load master data")
	}

	return Run(trxs, lk, q), q, nil
}

// POST /api/analytics/query
// Screen view is capped; totals still cover the full filtered set.
func QueryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, _, err := runQuery(c, detailRowLimit)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// POST /api/analytics/export?format=csv|xlsx
// Exports are uncapped.
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, q, err := runQuery(c, 0)
		if err != nil {
			return err
		}

		table := res.Table(q.GroupBy)
		stamp := time.Now().Format("20060102")

		switch c.Query("format", "csv") {
		case "csv":
			data, err := WriteCSV(table)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build CSV")
			}
			c.Set(fiber.HeaderContentType, "text/csv")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report_%s.csv"`, stamp))
			return c.Send(data)
		case "xlsx":
			f, err := BuildXLSX(table, "Report")
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build XLSX")
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build XLSX")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report_%s.xlsx"`, stamp))
			return c.Send(buf.Bytes())
		default:
			return fiber.NewError(fiber.StatusBadRequest, "format must be 'csv' or 'xlsx'")
		}
	}
}

// GET /api/reports/transport
func TransportReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dispatches []models.DispatchRecord
		if err := database.DB.Find(&dispatches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dispatches")
		}

		var trxs []models.Transaction
		if err := database.DB.Where("sale_group_id <> ''").Find(&trxs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transactions")
		}

		rows := TransportReport(dispatches, trxs)

		if c.Query("format") == "csv" {
			data, err := WriteCSV(TransportTable(rows))
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build CSV")
			}
			c.Set(fiber.HeaderContentType, "text/csv")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="transport_%s.csv"`, time.Now().Format("20060102")))
			return c.Send(data)
		}
		return c.JSON(rows)
	}
}
