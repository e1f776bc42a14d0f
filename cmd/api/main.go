package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/essaghir/stock-ledger-api/internal/application/analytics"
	"github.com/essaghir/stock-ledger-api/internal/application/auth"
	appbackup "github.com/essaghir/stock-ledger-api/internal/application/backup"
	appreport "github.com/essaghir/stock-ledger-api/internal/application/report"
	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/application/usecase"
	infrabackup "github.com/essaghir/stock-ledger-api/internal/infrastructure/backup"
	infrapdf "github.com/essaghir/stock-ledger-api/internal/infrastructure/pdf"
	"github.com/essaghir/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/essaghir/stock-ledger-api/internal/interfaces/http"
	"github.com/essaghir/stock-ledger-api/pkg/config"
	"github.com/essaghir/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	upRepo := postgres.NewUserProductRepository(pool)
	lineRepo := postgres.NewProductLineRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reconcileUC := appstock.NewReconcileUseCase(txRunner, lineRepo, upRepo)
	userProductUC := usecase.NewUserProductUseCase(txRunner, upRepo, lineRepo)
	aggregatorUC := appanalytics.NewAggregatorUseCase(movRepo, lineRepo, analyticsRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := appreport.NewReportUseCase(aggregatorUC, userRepo, pdfGenerator)

	exportBuilder := infrabackup.NewEtreeExportBuilder()
	backupUC := appbackup.NewBackupUseCase(
		upRepo, lineRepo, movRepo, userRepo, exportBuilder, cfg.Backup.MaxMovements,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserProductUC: userProductUC,
		ReconcileUC:   reconcileUC,
		AggregatorUC:  aggregatorUC,
		ReportUC:      reportUC,
		BackupUC:      backupUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
