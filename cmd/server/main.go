package main

import (
	"log"
	"strings"

	"smbooks-backend/internal/audit"
	"smbooks-backend/internal/auth"
	"smbooks-backend/internal/balance"
	"smbooks-backend/internal/company"
	"smbooks-backend/internal/config"
	"smbooks-backend/internal/database"
	"smbooks-backend/internal/documents"
	"smbooks-backend/internal/export"
	"smbooks-backend/internal/ledger"
	"smbooks-backend/internal/models"
	"smbooks-backend/internal/payroll"
	"smbooks-backend/internal/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	reportsSvc := reports.NewService(reports.NewGormStore(database.DB))
	documentsSvc := documents.NewService(database.DB)

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
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin-only user management
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/users", auth.CreateUserHandler())

	// Companies
	protected.Post("/companies", company.CreateCompanyHandler())
	protected.Get("/companies", company.ListCompaniesHandler())
	protected.Get("/companies/:id", company.GetCompanyHandler())

	// General ledger
	protected.Post("/transactions", ledger.CreateTransactionHandler())
	protected.Post("/transactions/bulk", ledger.BulkImportHandler())
	protected.Get("/transactions", ledger.ListTransactionsHandler())

	// Payroll
	protected.Post("/payroll", payroll.CreatePayrollHandler())
	protected.Get("/payroll", payroll.ListPayrollHandler())
	protected.Get("/payroll/:id/payslip", payroll.PayslipHandler())

	// Assets, liabilities and equity
	protected.Post("/balance-items", balance.CreateBalanceItemHandler())
	protected.Get("/balance-items", balance.ListBalanceItemsHandler())
	protected.Post("/equity", balance.CreateEquityHandler())
	protected.Get("/equity", balance.ListEquityHandler())

	// Quotes and invoices
	protected.Post("/quotes", documents.CreateQuoteHandler())
	protected.Get("/quotes", documents.ListQuotesHandler())
	protected.Post("/quotes/:id/convert", documents.ConvertQuoteHandler(documentsSvc))
	protected.Post("/invoices", documents.CreateInvoiceHandler())
	protected.Get("/invoices", documents.ListInvoicesHandler())
	protected.Patch("/invoices/:id/pay", documents.PayInvoiceHandler(documentsSvc))
	protected.Delete("/invoices/:id", documents.DeleteInvoiceHandler(documentsSvc))
	protected.Get("/invoices/:id/export", export.ExportInvoiceHandler())

	// Purchase orders and bills
	protected.Post("/purchase-orders", documents.CreatePurchaseOrderHandler())
	protected.Get("/purchase-orders", documents.ListPurchaseOrdersHandler())
	protected.Post("/purchase-orders/:id/convert", documents.ConvertPurchaseOrderHandler(documentsSvc))
	protected.Post("/bills", documents.CreateBillHandler())
	protected.Get("/bills", documents.ListBillsHandler())
	protected.Patch("/bills/:id/pay", documents.PayBillHandler(documentsSvc))
	protected.Delete("/bills/:id", documents.DeleteBillHandler(documentsSvc))

	// Financial statements
	protected.Get("/reports/profit-loss", reports.ProfitLossHandler(reportsSvc))
	protected.Get("/reports/balance-sheet", reports.BalanceSheetHandler(reportsSvc))
	protected.Get("/reports/cash-flow", reports.CashFlowHandler(reportsSvc))
	protected.Get("/reports/bas", reports.BASHandler(reportsSvc))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
