package main

import (
	"log"
	"strings"

	"backoffice-backend/internal/audit"
	"backoffice-backend/internal/auth"
	"backoffice-backend/internal/config"
	"backoffice-backend/internal/dashboard"
	"backoffice-backend/internal/database"
	"backoffice-backend/internal/inventory"
	"backoffice-backend/internal/models"
	"backoffice-backend/internal/opexpense"
	"backoffice-backend/internal/payroll"
	"backoffice-backend/internal/recipe"
	"backoffice-backend/internal/report"
	"backoffice-backend/internal/saleslog"
	"backoffice-backend/internal/summary"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.GetLogger()
	database.Init(cfg)

	coord := summary.NewCoordinator(database.DB, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Error("unexpected error: " + err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
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
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin-only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/products", inventory.CreateProductHandler())
	adminRoutes.Put("/products/:id", inventory.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler())

	adminRoutes.Post("/product-categories", inventory.CreateCategoryHandler())
	adminRoutes.Put("/product-categories/:id", inventory.UpdateCategoryHandler())
	adminRoutes.Delete("/product-categories/:id", inventory.DeleteCategoryHandler())

	adminRoutes.Post("/highlight-rules", inventory.CreateHighlightRuleHandler())
	adminRoutes.Put("/highlight-rules/:id", inventory.UpdateHighlightRuleHandler())
	adminRoutes.Delete("/highlight-rules/:id", inventory.DeleteHighlightRuleHandler())

	adminRoutes.Post("/summary/recompute", dashboard.RecomputeSummaryHandler(coord))

	// Catalog
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/product-categories", inventory.ListCategoriesHandler())
	protected.Get("/highlight-rules", inventory.ListHighlightRulesHandler())

	// Recipes
	protected.Post("/recipes", recipe.CreateRecipeHandler())
	protected.Get("/recipes", recipe.ListRecipesHandler())
	protected.Get("/recipes/:id", recipe.GetRecipeHandler())
	protected.Put("/recipes/:id", recipe.UpdateRecipeHandler())
	protected.Delete("/recipes/:id", recipe.DeleteRecipeHandler())

	// Daily sales / cash logs
	protected.Post("/sales-logs", saleslog.UpsertSalesLogHandler(coord))
	protected.Get("/sales-logs", saleslog.ListSalesLogsHandler())
	protected.Get("/sales-logs/:date", saleslog.GetSalesLogHandler())
	protected.Delete("/sales-logs/:date", saleslog.DeleteSalesLogHandler(coord))

	// Operating expenses
	protected.Post("/operating-expenses", opexpense.CreateOperatingExpenseHandler(coord))
	protected.Get("/operating-expenses", opexpense.ListOperatingExpensesHandler())
	protected.Put("/operating-expenses/:id", opexpense.UpdateOperatingExpenseHandler(coord))
	protected.Delete("/operating-expenses/:id", opexpense.DeleteOperatingExpenseHandler(coord))

	// Payroll
	protected.Post("/payroll-expenses", payroll.CreatePayrollExpenseHandler(coord))
	protected.Get("/payroll-expenses", payroll.ListPayrollExpensesHandler())
	protected.Put("/payroll-expenses/:id", payroll.UpdatePayrollExpenseHandler(coord))
	protected.Delete("/payroll-expenses/:id", payroll.DeletePayrollExpenseHandler(coord))

	// Summaries & dashboard
	protected.Get("/summary/monthly", dashboard.MonthlySummaryHandler())
	protected.Get("/summary/yearly", dashboard.YearlySummaryHandler())
	protected.Get("/dashboard/cash-chart", dashboard.CashChartHandler())

	// Reports
	protected.Get("/reports/monthly.xlsx", report.MonthlyReportHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
