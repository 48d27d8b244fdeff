package billing

import (
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/config"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/gofiber/fiber/v2"
)

// loadInvoice expands a transaction into its full bill: every row of the
// sale group, the party, the grain and the payment history.
func loadInvoice(cfg *config.Config, id string) (Invoice, error) {
	var trx models.Transaction
	if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
		return Invoice{}, fiber.NewError(fiber.StatusNotFound, "Transaction not found")
	}

	rows := []models.Transaction{trx}
	if trx.SaleGroupID != "" {
		if err := database.DB.Where("sale_group_id = ?", trx.SaleGroupID).
			Order("id asc").
			Find(&rows).Error; err != nil {
			return Invoice{}, fiber.NewError(fiber.StatusInternalServerError, "Could not load bill rows")
		}
	}

	var contact models.Contact
	if err := database.DB.First(&contact, "id = ?", trx.ContactID).Error; err != nil {
		contact = models.Contact{Name: "Unknown"}
	}
	var grain models.Grain
	if err := database.DB.First(&grain, "id = ?", trx.GrainID).Error; err != nil {
		grain = models.Grain{Name: "Unknown"}
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	var payments []models.PaymentRecord
	if err := database.DB.Where("transaction_id IN ?", ids).
		Order("date asc, id asc").
		Find(&payments).Error; err != nil {
		return Invoice{}, fiber.NewError(fiber.StatusInternalServerError, "Could not load payments")
	}

	return BuildInvoice(cfg, rows, contact, grain, payments), nil
}

// GET /api/transactions/:id/bill
func BillHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := loadInvoice(cfg, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(inv)
	}
}

// GET /api/transactions/:id/bill/html
func BillHTMLHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, err := loadInvoice(cfg, c.Params("id"))
		if err != nil {
			return err
		}
		html, err := RenderHTML(inv)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render bill")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(html)
	}
}
