package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssmai/stock-forecast-api/internal/application/forecast"
	appstock "github.com/ssmai/stock-forecast-api/internal/application/stock"
	"github.com/ssmai/stock-forecast-api/internal/application/usecase"
	"github.com/ssmai/stock-forecast-api/internal/infrastructure/postgres"
	httpRouter "github.com/ssmai/stock-forecast-api/internal/interfaces/http"
	"github.com/ssmai/stock-forecast-api/pkg/config"
	"github.com/ssmai/stock-forecast-api/pkg/logger"
	"github.com/ssmai/stock-forecast-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	forecastRepo := postgres.NewForecastRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mtr := metrics.New()

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, companyRepo, stockRepo)
	stockUC := appstock.NewUseCase(txRunner, productRepo, stockRepo, movementRepo)

	runUC := forecast.NewRunUseCase(txRunner, movementRepo, productRepo, companyRepo, forecast.Params{
		HorizonDays:    cfg.Forecast.HorizonDays,
		MinHistoryDays: cfg.Forecast.MinHistoryDays,
		FitTimeout:     cfg.Forecast.FitTimeout,
		MaxParallel:    cfg.Forecast.MaxParallel,
		ServiceLevel:   cfg.Forecast.ServiceLevel,
		LeadTimeDays:   cfg.Forecast.LeadTimeDays,
	}, log, mtr)
	analysisUC := forecast.NewAnalysisUseCase(movementRepo, stockRepo, forecastRepo, cfg.Forecast.HorizonDays)
	deviationUC := forecast.NewDeviationUseCase(stockRepo, cfg.Forecast.DeviationLimit)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // la corrida batch puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		ProductUC:    productUC,
		StockUC:      stockUC,
		RunUC:        runUC,
		AnalysisUC:   analysisUC,
		DeviationUC:  deviationUC,
		ServiceLevel: cfg.Forecast.ServiceLevel,
		LeadTimeDays: cfg.Forecast.LeadTimeDays,
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
