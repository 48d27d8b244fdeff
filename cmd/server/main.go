package main

import (
	"log"
	"strings"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/audit"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/auth"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/billing"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/config"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/dispatch"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/inventory"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/master"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/report"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/stats"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/transactions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// User management (admin only)
	adminRoutes := protected.Group("/users")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("", auth.CreateUserHandler())
	adminRoutes.Get("", auth.ListUsersHandler())
	adminRoutes.Put("/:id", auth.UpdateUserHandler())
	adminRoutes.Delete("/:id", auth.DeleteUserHandler())

	// Master data
	masterRoutes := protected.Group("", auth.RequirePermission("master_data"))
	masterRoutes.Post("/grains", master.CreateGrainHandler())
	masterRoutes.Put("/grains/:id", master.UpdateGrainHandler())
	masterRoutes.Post("/warehouses", master.CreateWarehouseHandler())
	masterRoutes.Put("/warehouses/:id", master.UpdateWarehouseHandler())
	masterRoutes.Post("/contacts", master.CreateContactHandler())
	masterRoutes.Put("/contacts/:id", master.UpdateContactHandler())

	protected.Get("/grains", master.ListGrainsHandler())
	protected.Get("/warehouses", master.ListWarehousesHandler())
	protected.Get("/contacts", master.ListContactsHandler())
	protected.Get("/bank-details", master.BankDetailsHandler(cfg))

	// Transactions
	trxRoutes := protected.Group("/transactions", auth.RequirePermission("transactions"))
	trxRoutes.Post("/purchase", transactions.CreatePurchaseHandler())
	trxRoutes.Post("/bulk-sale", transactions.CreateBulkSaleHandler())
	trxRoutes.Get("", transactions.ListTransactionsHandler())
	trxRoutes.Put("/:id", transactions.UpdateTransactionHandler())
	trxRoutes.Delete("/:id", auth.RequireRole(models.RoleAdmin), transactions.DeleteTransactionHandler())

	// Payments & settlement
	trxRoutes.Post("/:id/payment", transactions.RecordPaymentHandler())
	trxRoutes.Get("/:id/payments", transactions.ListPaymentsHandler())
	trxRoutes.Put("/:id/settlement", transactions.ApplySettlementHandler())

	// Bills
	trxRoutes.Get("/:id/bill", billing.BillHandler(cfg))
	trxRoutes.Get("/:id/bill/html", billing.BillHTMLHandler(cfg))

	// Dispatch freight ledger
	dispatchRoutes := protected.Group("/dispatches", auth.RequirePermission("dispatches"))
	dispatchRoutes.Get("", dispatch.ListDispatchesHandler())
	dispatchRoutes.Put("/:id", dispatch.UpdateDispatchHandler())

	// Inventory
	protected.Get("/inventory", inventory.StockHandler())

	// Dashboard
	protected.Get("/stats/dashboard", stats.DashboardHandler())

	// Analytics & reports
	reportRoutes := protected.Group("", auth.RequirePermission("reports"))
	reportRoutes.Post("/analytics/query", report.QueryHandler())
	reportRoutes.Post("/analytics/export", report.ExportHandler())
	reportRoutes.Get("/reports/transport", report.TransportReportHandler())

	// Audit logs (admin only)
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
