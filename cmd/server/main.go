package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/clients"
	"github.com/skyvoyage/booking-backend/internal/config"
	"github.com/skyvoyage/booking-backend/internal/database"
	"github.com/skyvoyage/booking-backend/internal/handlers"
	"github.com/skyvoyage/booking-backend/internal/middleware"
	"github.com/skyvoyage/booking-backend/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SkyVoyage Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize the audit store if configured
	var db *sqlx.DB
	var auditLog services.AuditLog
	if cfg.AuditEnabled() {
		logger.Info("Connecting to audit database...")
		db, err = database.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		auditLog = database.NewBookingAuditRepository(db, logger)
		logger.Info("Audit database connection established")
	} else {
		logger.Warn("DATABASE_URL not set, booking audit disabled")
	}

	// Initialize downstream service clients
	logger.Info("Initializing service clients...")
	flightClient := clients.NewFlightClient(cfg.Services.FlightBaseURL, cfg.Services.RequestTimeout, logger)
	hotelClient := clients.NewHotelClient(cfg.Services.HotelBaseURL, cfg.Services.RequestTimeout, logger)
	carClient := clients.NewCarClient(cfg.Services.CarBaseURL, cfg.Services.RequestTimeout, logger)
	bookingClient := clients.NewBookingClient(cfg.Services.UserBaseURL, cfg.Services.RequestTimeout, logger)

	// Initialize services
	pricingService := services.NewPricingService()
	orchestrator := services.NewBookingOrchestratorService(
		flightClient,
		hotelClient,
		carClient,
		bookingClient,
		pricingService,
		auditLog,
		logger,
	)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(orchestrator, flightClient, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check and metrics endpoints
	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/bookings", bookingHandler.SubmitBooking)
		v1.POST("/bookings/quote", bookingHandler.Quote)
		v1.GET("/flights/:id/seatmap", bookingHandler.GetSeatMap)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler reports process and audit store health
func healthCheckHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "disabled"
		if db != nil {
			dbStatus = "healthy"
			if err := db.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": "unhealthy",
					"error":    err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
