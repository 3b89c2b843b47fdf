package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/wealth-tracker/internal/config"
	"github.com/Dan9191/wealth-tracker/internal/handler"
	"github.com/Dan9191/wealth-tracker/internal/integrations/ecb"
	"github.com/Dan9191/wealth-tracker/internal/middleware"
	"github.com/Dan9191/wealth-tracker/internal/repository"
	"github.com/Dan9191/wealth-tracker/internal/scheduler"
	"github.com/Dan9191/wealth-tracker/internal/service"
	"github.com/Dan9191/wealth-tracker/internal/utils/email"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	dialect, err := repository.ParseDialect(cfg.DBDriver)
	if err != nil {
		logger.Fatalf("Failed to select database: %v", err)
	}
	db, err := sql.Open(string(dialect), cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if dialect == repository.SQLite {
		// a single writer avoids SQLITE_BUSY on concurrent reconciliations
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	repo := repository.NewRepository(db, dialect)
	if err := repo.Migrate(context.Background()); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize layers
	opts := []service.Option{service.WithRateProvider(ecb.NewClient(cfg, logger))}
	if cfg.MailEnabled() {
		opts = append(opts, service.WithNotifier(email.NewSender(cfg, logger)))
	}
	svc := service.NewService(repo, logger, cfg, opts...)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := h.Router(middleware.AuthMiddleware(cfg, svc, logger))
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})

	// Nightly reconciliation
	sched := scheduler.New(logger)
	if cfg.ReconcileSchedule != "" {
		if err := sched.AddJob(cfg.ReconcileSchedule, scheduler.NewReconcileJob(svc, 10*time.Minute)); err != nil {
			logger.Fatalf("Failed to schedule reconciliation: %v", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
