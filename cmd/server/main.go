package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stock-predictor-api/internal/config"
	"stock-predictor-api/internal/handlers"
	"stock-predictor-api/internal/services"
	"stock-predictor-api/pkg/alphavantage"
	"stock-predictor-api/pkg/mlservice"
	"stock-predictor-api/pkg/yahoo"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Market data provider is selected once at startup; every request goes
	// through the same provider.
	var provider services.HistoryProvider
	if cfg.DataProvider == "alphavantage" {
		provider = alphavantage.NewClient(cfg.AlphaVantageKey)
	} else {
		provider = yahoo.NewClient()
	}

	marketData := services.NewMarketDataService(provider)
	forecast := services.NewForecastService(mlservice.NewClient(cfg.MLServiceURL))
	prediction := services.NewPredictionService(marketData, forecast)

	requestTimeout := time.Duration(cfg.RequestTimeout) * time.Second
	predictHandler := handlers.NewPredictHandler(prediction, requestTimeout)
	healthHandler := handlers.NewHealthHandler()
	stocksHandler := handlers.NewStocksHandler()

	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "Stock-Predictor",
		AppName:       "Stock Predictor API",
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 10,
		ErrorHandler:  handlers.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       3600,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Stock Predictor API",
			"status":  "running",
		})
	})

	app.Get("/predict", predictHandler.Predict)
	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)
	app.Get("/stocks", stocksHandler.Stocks)

	if cfg.StaticDir != "" {
		app.Static("/app", cfg.StaticDir)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("environment", cfg.Environment).
		Str("provider", cfg.DataProvider).
		Str("ml_service", cfg.MLServiceURL).
		Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server shutdown complete")
}
