package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/essaghir/stock-ledger-api/internal/application/analytics"
	"github.com/essaghir/stock-ledger-api/internal/application/auth"
	"github.com/essaghir/stock-ledger-api/internal/application/backup"
	"github.com/essaghir/stock-ledger-api/internal/application/report"
	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserProductUC *usecase.UserProductUseCase
	ReconcileUC   *appstock.ReconcileUseCase
	AggregatorUC  *analytics.AggregatorUseCase
	ReportUC      *report.ReportUseCase
	BackupUC      *backup.BackupUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lotes y líneas (protegido; borrados solo admin)
	products := protected.Group("/products")
	productHandler := NewUserProductHandler(deps.UserProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)
	products.Post("/:id/lines", productHandler.AddLine)
	products.Put("/:id/lines/:lineId", productHandler.UpdateLine)
	products.Delete("/:id/lines/:lineId", RequireAdmin(), productHandler.DeleteLine)

	// Ledger de movimientos (protegido)
	movements := protected.Group("/stock-movements")
	movementHandler := NewStockMovementHandler(deps.ReconcileUC, deps.AggregatorUC)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)

	// Analítica (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AggregatorUC)
	analyticsGroup.Get("/daily-movements", analyticsHandler.DailyMovements)
	analyticsGroup.Get("/weekly-totals", analyticsHandler.WeeklyTotals)
	analyticsGroup.Get("/monthly-summary", analyticsHandler.MonthlySummary)
	analyticsGroup.Get("/category-stats", analyticsHandler.CategoryStats)
	analyticsGroup.Get("/product-performance", analyticsHandler.ProductPerformance)
	analyticsGroup.Get("/current-overview", analyticsHandler.CurrentOverview)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock.pdf", reportHandler.StockPDF)

	// Respaldo (protegido, solo admin)
	backupGroup := protected.Group("/backup", RequireAdmin())
	backupHandler := NewBackupHandler(deps.BackupUC)
	backupGroup.Get("/export", backupHandler.Export)
}
