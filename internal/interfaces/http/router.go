package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/advice"
	appanalytics "github.com/jhoicas/Caderno-api/internal/application/analytics"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName      string
	LedgerUC     *ledger.LedgerUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AdviceUC     *advice.AdviceUseCase
	ReportUC     *report.ReportUseCase
	ParseCatalog CatalogParser
}

// Router registra las rutas de la API. Sin autenticación: un solo negocio por instancia.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.LedgerUC, deps.ParseCatalog)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Post("/import", productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", RequireConfirmation(), productHandler.Delete)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.LedgerUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)

	// Debts
	debts := api.Group("/debts")
	debtHandler := NewDebtHandler(deps.LedgerUC)
	debts.Post("/", debtHandler.Create)
	debts.Get("/", debtHandler.List)
	debts.Post("/:id/settle", debtHandler.Settle)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Advice (consultor IA)
	if deps.AdviceUC != nil {
		adviceHandler := NewAdviceHandler(deps.AdviceUC)
		api.Post("/advice", adviceHandler.Request)
		api.Get("/advice", adviceHandler.Status)
	}

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/products.csv", reportHandler.CSV(report.TableProducts))
	reports.Get("/sales.csv", reportHandler.CSV(report.TableSales))
	reports.Get("/debts.csv", reportHandler.CSV(report.TableDebts))
	reports.Get("/daily.pdf", reportHandler.DailyPDF)
}
