package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/activity"
	"github.com/opendoorexp/wildex-frontend/internal/auth"
	"github.com/opendoorexp/wildex-frontend/internal/basket"
	"github.com/opendoorexp/wildex-frontend/internal/catalog"
	"github.com/opendoorexp/wildex-frontend/internal/checkout"
	"github.com/opendoorexp/wildex-frontend/internal/config"
	"github.com/opendoorexp/wildex-frontend/internal/currency"
	"github.com/opendoorexp/wildex-frontend/internal/database"
	"github.com/opendoorexp/wildex-frontend/internal/events"
	"github.com/opendoorexp/wildex-frontend/internal/handlers"
	"github.com/opendoorexp/wildex-frontend/internal/middleware"
	"github.com/opendoorexp/wildex-frontend/internal/session"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
	"github.com/opendoorexp/wildex-frontend/pkg/jwt"
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

	logger.Info("Starting Wildex Frontend")
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

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Optional Redis cache for catalog listings
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis unavailable, catalog caching disabled")
			redisClient = nil
		} else {
			logger.Info("Redis connection established")
		}
	} else {
		logger.Info("No Redis configured, catalog caching disabled")
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.Session.Secret, cfg.Session.TokenExpiry)

	sessionRepository := database.NewSessionRepository(db)
	sessionStore := session.NewStore(sessionRepository, jwtService, logger)

	tracker := activity.NewTracker()
	upstreamClient := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, tracker, logger)

	authFlow := auth.NewFlow(upstreamClient.Auth(), sessionStore, logger)

	catalogCache := catalog.NewCache(redisClient, cfg.Redis.CacheTTL, logger)
	catalogService := catalog.NewService(upstreamClient.Packages(), catalogCache, logger)

	basketLimits := basket.Limits{
		MinParticipants: cfg.Basket.MinParticipants,
		MaxParticipants: cfg.Basket.MaxParticipants,
	}
	basketManager := basket.NewManager(upstreamClient.Coupons(), basketLimits, logger)

	var publisher checkout.EventPublisher
	if p := events.NewPublisher(cfg.Events.URL, cfg.Events.Queue, logger); p != nil {
		publisher = p
		logger.Info("Event publishing enabled")
	} else {
		logger.Info("No broker configured, event publishing disabled")
	}

	checkoutConfig := checkout.Config{
		GatewayKeyID: cfg.Payment.KeyID,
		DisplayName:  cfg.Payment.DisplayName,
		ThemeColor:   cfg.Payment.ThemeColor,
		LogoURL:      cfg.Payment.LogoURL,
		Currency:     cfg.Payment.Currency,
	}
	orchestrator := checkout.NewOrchestrator(
		upstreamClient.Bookings(),
		upstreamClient.Payments(),
		basketManager,
		publisher,
		checkoutConfig,
		logger,
	)

	converter := currency.NewConverter(currency.DefaultRatesURL, logger)
	if err := converter.RefreshRates(context.Background()); err != nil {
		logger.WithError(err).Warn("Starting with fallback exchange rates")
	}

	logger.Info("Services initialized")

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionStore, converter, tracker, logger)
	authHandler := handlers.NewAuthFlowHandler(authFlow, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, converter, logger)
	basketHandler := handlers.NewBasketHandler(basketManager, catalogService, logger)
	checkoutHandler := handlers.NewCheckoutHandler(orchestrator, logger)
	profileHandler := handlers.NewProfileHandler(upstreamClient.Customers(), sessionStore, logger)
	bookingHandler := handlers.NewBookingHandler(upstreamClient.Bookings(), upstreamClient.Payments(), logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Every API route runs behind the session middleware
	cookieOpts := middleware.SessionCookieOptions{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.Session.TokenExpiry.Seconds()),
		Secure: cfg.Server.Environment == "production",
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware(sessionStore, cookieOpts, logger))
	{
		// Session state
		v1.GET("/session", sessionHandler.GetSession)
		v1.POST("/session/logout", sessionHandler.Logout)
		v1.PUT("/session/currency", sessionHandler.SetCurrency)
		v1.POST("/session/booking-intent", sessionHandler.SetBookingIntent)
		v1.DELETE("/session/booking-intent", sessionHandler.ClearBookingIntent)
		v1.GET("/currencies", sessionHandler.Currencies)
		v1.GET("/status/loader", sessionHandler.LoaderStatus)

		// OTP login and registration flow
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/begin", authHandler.Begin)
			authRoutes.POST("/phone", authHandler.SubmitPhone)
			authRoutes.POST("/otp", authHandler.SubmitOTP)
			authRoutes.POST("/resend", authHandler.Resend)
			authRoutes.GET("/state", authHandler.State)
		}

		// Package catalog
		packages := v1.Group("/packages")
		{
			packages.GET("", catalogHandler.List)
			packages.GET("/featured", catalogHandler.Featured)
			packages.GET("/trending", catalogHandler.Trending)
			packages.GET("/slug/:slug", catalogHandler.DetailBySlug)
			packages.GET("/:id", catalogHandler.Detail)
		}

		// Booking basket
		basketRoutes := v1.Group("/basket")
		{
			basketRoutes.POST("", basketHandler.Open)
			basketRoutes.GET("", basketHandler.Get)
			basketRoutes.DELETE("", basketHandler.Close)
			basketRoutes.PUT("/participants", basketHandler.SetParticipants)
			basketRoutes.PUT("/addons", basketHandler.ToggleAddOn)
			basketRoutes.PUT("/payment-type", basketHandler.SetPaymentType)
			basketRoutes.POST("/coupon", basketHandler.ApplyCoupon)
			basketRoutes.DELETE("/coupon", basketHandler.RemoveCoupon)
		}

		// Checkout
		checkoutRoutes := v1.Group("/checkout")
		{
			checkoutRoutes.POST("/confirm", checkoutHandler.Confirm)
			checkoutRoutes.POST("/payment/success", checkoutHandler.PaymentSuccess)
			checkoutRoutes.POST("/payment/dismissed", checkoutHandler.PaymentDismissed)
			checkoutRoutes.POST("/reset", checkoutHandler.Reset)
			checkoutRoutes.GET("/state", checkoutHandler.State)
		}

		// Profile and wishlist
		profile := v1.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.GET("/wishlist", profileHandler.GetWishlist)
		}

		// Bookings
		bookings := v1.Group("/bookings")
		{
			bookings.GET("", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
			bookings.GET("/:id/payment", bookingHandler.PaymentStatus)
			bookings.GET("/:id/receipt", bookingHandler.Receipt)
		}
	}

	// Background maintenance: drop anonymous sessions that never came back
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed, err := sessionRepository.CleanupStaleSessions(30 * 24 * time.Hour)
				if err != nil {
					logger.WithError(err).Warn("Session cleanup failed")
				} else if removed > 0 {
					logger.WithField("removed", removed).Info("Cleaned up stale sessions")
				}
			case <-stopCleanup:
				return
			}
		}
	}()

	// Refresh exchange rates periodically
	stopRates := make(chan struct{})
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				if err := converter.RefreshRates(ctx); err != nil {
					logger.WithError(err).Warn("Exchange rate refresh failed")
				}
				cancel()
			case <-stopRates:
				return
			}
		}
	}()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
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
	close(stopCleanup)
	close(stopRates)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy"
		if err := db.Ping(); err != nil {
			dbStatus = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": dbStatus,
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
