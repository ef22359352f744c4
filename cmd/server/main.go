package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "propertydesk-backend/internal/api/http"
	"propertydesk-backend/internal/config"
	"propertydesk-backend/internal/logger"
	"propertydesk-backend/internal/repository/postgres"
	"propertydesk-backend/internal/security"
	"propertydesk-backend/internal/service"
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
	logger.Info("Starting PropertyDesk backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	attemptStore := security.NewMemoryAttemptStore(time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute)
	loginLimiter := security.NewLoginLimiter(attemptStore, cfg.RateLimit.LoginAttempts)

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.Enabled {
		logger.Info("Email sending enabled", "from", cfg.Email.FromAddress)
		emailSvc = service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	} else {
		logger.Info("Email sending disabled")
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, loginLimiter)
	userSvc := service.NewUserService(store.UserRepository)
	propertySvc := service.NewPropertyService(store.PropertyRepository)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.PropertyRepository, emailSvc)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.BookingRepository, store.PropertyRepository)
	reportSvc := service.NewReportService(store.UserRepository, store.PropertyRepository, store.BookingRepository, store.PaymentRepository)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc),
		Users:      httpapi.NewUserHandler(userSvc),
		Properties: httpapi.NewPropertyHandler(propertySvc),
		Bookings:   httpapi.NewBookingHandler(bookingSvc),
		Payments:   httpapi.NewPaymentHandler(paymentSvc),
		Reports:    httpapi.NewReportHandler(reportSvc),
	}, tokenManager)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
