package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"

	httpapi "gearmarket-backend/internal/api/http"
	"gearmarket-backend/internal/config"
	"gearmarket-backend/internal/jobs"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/otp"
	"gearmarket-backend/internal/repository/postgres"
	"gearmarket-backend/internal/scheduler"
	"gearmarket-backend/internal/security"
	"gearmarket-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearMarket Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis (OTP codes and request counters)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	cancel()
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr)

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	otpStore := otp.NewStore(rdb, time.Duration(cfg.OTP.TTLMinutes)*time.Minute, cfg.OTP.MaxRequestsPerHr)

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, tokenManager, otpStore, emailSvc)
	productSvc := service.NewProductService(store.Products)
	inventorySvc := service.NewInventoryService(store.Products, store.Reservations)
	checkoutSvc := service.NewCheckoutService(store, store.Users, emailSvc, int32(cfg.Billing.DefaultTaxRateBps))
	orderSvc := service.NewOrderService(store, store.Orders)
	invoiceSvc := service.NewInvoiceService(store, store.Invoices, store.Users, emailSvc, cfg.Billing.InvoiceDueDays)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc)
	productHandler := httpapi.NewProductHandler(productSvc, inventorySvc)
	orderHandler := httpapi.NewOrderHandler(checkoutSvc, orderSvc)
	invoiceHandler := httpapi.NewInvoiceHandler(invoiceSvc)

	router := httpapi.NewRouter(tokenManager, authHandler, productHandler, orderHandler, invoiceHandler)

	// Initialize the in-process scheduler
	jobServices := &jobs.Services{
		Email: emailSvc,
		Order: orderSvc,
	}
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
