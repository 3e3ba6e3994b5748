// Package main is the entry point for the Budget Engine API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/config"
	"github.com/budget-engine/backend/internal/application/usecase/forecast"
	"github.com/budget-engine/backend/internal/application/usecase/paycheck"
	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	"github.com/budget-engine/backend/internal/infra/db"
	"github.com/budget-engine/backend/internal/infra/server/router"
	"github.com/budget-engine/backend/internal/integration/cache"
	"github.com/budget-engine/backend/internal/integration/entrypoint/controller"
	"github.com/budget-engine/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-engine/backend/internal/integration/persistence"
	"github.com/budget-engine/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Budget Engine API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	estimatedPaycheck, err := decimal.NewFromString(cfg.Forecast.EstimatedPaycheckAmount)
	if err != nil {
		slog.Error("Invalid estimated paycheck amount", "value", cfg.Forecast.EstimatedPaycheckAmount, "error", err)
		os.Exit(1)
	}

	// Initialize database connection. Snapshot endpoints work without a
	// database, so a failed connection degrades instead of aborting.
	var database *db.Database
	var dbHealthChecker func() bool

	database, err = db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		database = nil
		dbHealthChecker = func() bool { return false }
	} else {
		// Run database migrations
		if err := database.AutoMigrate(
			&model.RecurringItemModel{},
			&model.DebtModel{},
			&model.VariableExpenseModel{},
			&model.ActualSpendModel{},
			&model.GoalModel{},
			&model.SinkingFundModel{},
			&model.PreferencesModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize the Redis-backed breakdown cache. Creating a client does
	// not connect; cache read/write failures degrade to fresh computation.
	redisClient, cacheHealthChecker := newRedisClient(&cfg.Redis)
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis client", "error", err)
		}
	}()
	breakdownCache := cache.NewBreakdownCache(redisClient, cfg.Redis.CacheTTL)

	// Core engine wiring: expanders feed the period builder and the
	// expense matcher; the allocation engine and health analyzer feed the
	// breakdown computation.
	expander := schedule.NewRecurrenceExpander()
	debtExpander := schedule.NewDebtOccurrenceExpander()

	eventGenerator := paycheck.NewEventGenerator(
		expander,
		estimatedPaycheck,
		cfg.Forecast.EstimatedPeriodsForward,
		cfg.Forecast.EstimatedPeriodsBack,
	)
	buildPeriodsUseCase := paycheck.NewBuildPeriodsUseCase(
		eventGenerator,
		cfg.Forecast.HorizonMonths,
		cfg.Forecast.LookBackDays,
	)

	matcher := forecast.NewExpenseMatcher(expander, debtExpander)
	allocationEngine := forecast.NewAllocationEngine()
	healthAnalyzer := forecast.NewHealthAnalyzer()
	computeUseCase := forecast.NewComputeBreakdownsUseCase(
		matcher,
		allocationEngine,
		healthAnalyzer,
		cfg.Forecast.DeficitLookAheadPeriods,
	)

	// The stored-forecast path needs repositories; without a database the
	// endpoint is simply not wired.
	var getForecastUseCase *forecast.GetForecastUseCase
	if database != nil {
		getForecastUseCase = forecast.NewGetForecastUseCase(
			persistence.NewRecurringItemRepository(database.DB()),
			persistence.NewDebtRepository(database.DB()),
			persistence.NewVariableExpenseRepository(database.DB()),
			persistence.NewActualSpendRepository(database.DB()),
			persistence.NewGoalRepository(database.DB()),
			persistence.NewSinkingFundRepository(database.DB()),
			persistence.NewPreferencesRepository(database.DB()),
			breakdownCache,
			buildPeriodsUseCase,
			computeUseCase,
		)
		slog.Info("Stored-forecast endpoint initialized")
	} else {
		slog.Warn("Stored-forecast endpoint not initialized due to missing database connection")
	}

	// Create controllers and middleware
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)
	scheduleController := controller.NewScheduleController(expander, debtExpander)
	forecastController := controller.NewForecastController(
		buildPeriodsUseCase,
		computeUseCase,
		getForecastUseCase,
	)
	computeRateLimiter := middleware.NewRateLimiter()

	// Setup router
	r := router.NewRouter(healthController, scheduleController, forecastController, computeRateLimiter)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newRedisClient builds the cache client and its health probe from config.
// A malformed URL falls back to host defaults so startup never fails on the
// cache layer.
func newRedisClient(cfg *config.RedisConfig) (*redis.Client, func() bool) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid Redis URL, using defaults", "error", err)
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	healthChecker := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
	return client, healthChecker
}
