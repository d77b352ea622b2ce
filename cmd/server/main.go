package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/findash/internal/adapter/http"
	"github.com/iho/findash/internal/adapter/http/handler"
	postgresRepo "github.com/iho/findash/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/findash/internal/adapter/repository/redis"
	"github.com/iho/findash/internal/infrastructure/config"
	"github.com/iho/findash/internal/infrastructure/logger"
	"github.com/iho/findash/internal/infrastructure/postgres"
	"github.com/iho/findash/internal/infrastructure/redis"
	"github.com/iho/findash/internal/usecase"
)

func main() {
	// A missing .env is fine; containers configure through real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	thresholds, err := cfg.MilestoneAmounts()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid milestone thresholds")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	ledgerRepo := postgresRepo.NewLedgerRepository(pool, appLogger)
	loanRepo := postgresRepo.NewLoanRepository(pool, appLogger)
	viewCache := redisRepo.NewCache(redisClient)

	// Initialize use cases
	dashboardUC := usecase.NewDashboardUseCase(ledgerRepo, loanRepo, viewCache, usecase.DashboardOptions{
		MilestoneThresholds: thresholds,
		CacheTTL:            cfg.CacheTTL,
	})
	forecastUC := usecase.NewForecastUseCase(dashboardUC)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(dashboardUC)
	forecastHandler := handler.NewForecastHandler(forecastUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler:   reportHandler,
		ForecastHandler: forecastHandler,
		HealthHandler:   healthHandler,
		Logger:          appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
