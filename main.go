package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ticksy/internal/config"
	"ticksy/internal/handlers"
	"ticksy/internal/kafka"
	"ticksy/internal/logger"
	"ticksy/internal/middleware"
	"ticksy/internal/models"
	"ticksy/internal/monitoring"
	rediswrap "ticksy/internal/redis"
	"ticksy/internal/services"
	"ticksy/internal/storage"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Ticksy starting up...")

	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()
	log.LogDatabase("INIT", "mysql", "MySQL storage initialized successfully")

	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()
	log.LogKafka("INIT", "producer", "Kafka producer initialized successfully")

	redisClient := rediswrap.NewRedis(cfg.Redis)
	defer redisClient.Close()
	log.LogProcess("REDIS", "Redis client initialized")

	// Services
	authService := services.NewAuthService(store, cfg.Auth, log)
	eventService := services.NewEventService(store, log)
	ticketService := services.NewTicketService(store, log)
	orderService := services.NewOrderService(store, kafkaProducer, log)
	paymentService := services.NewPaymentService(store, kafkaProducer, redisClient, log)
	reviewService := services.NewReviewService(store, log)
	reportService := services.NewReportService(store, log)
	userService := services.NewUserService(store, log)
	auditService := services.NewAuditService(store, log)
	log.LogProcess("SERVICE", "All services initialized")

	// Audit consumer feeds order/payment events into the audit log. In mock
	// mode there is no broker to consume from, so it stays off.
	if !cfg.Kafka.MockMode {
		kafkaConsumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
		if err != nil {
			log.Fatal("KAFKA", "Failed to create Kafka consumer: "+err.Error())
		}
		defer kafkaConsumer.Close()

		go func() {
			log.LogKafka("START", "consumer", "Starting audit consumer goroutine")
			if err := kafkaConsumer.ConsumeOrders(context.Background(), auditService.RecordOrderEvent); err != nil {
				log.Error("KAFKA", "Consumer error: "+err.Error())
			}
		}()
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	reportHandler := handlers.NewReportHandler(reportService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(store, redisClient)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(cfg, store, authService,
		authHandler, eventHandler, ticketHandler, orderHandler,
		paymentHandler, reviewHandler, reportHandler, userHandler, healthHandler)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on "+cfg.Server.Port)
		log.Info("STARTUP", "🎟️  Ticksy is ready to accept requests!")
		log.Info("STARTUP", "📊 Health check available at: http://localhost"+cfg.Server.Port+"/health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "✅ Ticksy shutdown completed successfully")
}

func setupRouter(
	cfg *config.Config,
	store storage.Store,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	ticketHandler *handlers.TicketHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	reviewHandler *handlers.ReviewHandler,
	reportHandler *handlers.ReportHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log))
	if cfg.Metrics.Enabled {
		router.Use(monitoring.RequestMetrics())
		router.GET("/metrics", monitoring.Handler())
	}

	router.GET("/health", healthHandler.Health)

	requireAuth := middleware.RequireAuth(authService, store, log)
	organizerOnly := middleware.RequireRole(models.RoleOrganizer)
	attendeeOnly := middleware.RequireRole(models.RoleAttendee)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/signup", authHandler.Signup)
		v1.POST("/login", authHandler.Login)

		me := v1.Group("/me", requireAuth)
		{
			me.GET("", authHandler.GetProfile)
			me.PUT("", authHandler.UpdateProfile)
			me.GET("/saved-events", eventHandler.ListSavedEvents)
		}

		events := v1.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/tickets", ticketHandler.ListTickets)
			events.GET("/:id/reviews", reviewHandler.ListReviews)

			events.POST("", requireAuth, organizerOnly, eventHandler.CreateEvent)
			events.PUT("/:id", requireAuth, organizerOnly, eventHandler.UpdateEvent)
			events.DELETE("/:id", requireAuth, organizerOnly, eventHandler.DeleteEvent)
			events.POST("/:id/tickets", requireAuth, organizerOnly, ticketHandler.CreateTicket)

			events.POST("/:id/review", requireAuth, attendeeOnly, reviewHandler.AddReview)
			events.POST("/:id/save", requireAuth, eventHandler.SaveEvent)
			events.DELETE("/:id/save", requireAuth, eventHandler.UnsaveEvent)
		}

		tickets := v1.Group("/tickets", requireAuth, organizerOnly)
		{
			tickets.PUT("/:id", ticketHandler.UpdateTicket)
			tickets.DELETE("/:id", ticketHandler.DeleteTicket)
		}

		orders := v1.Group("/orders", requireAuth, attendeeOnly)
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("/stk-push", requireAuth, attendeeOnly, paymentHandler.STKPush)
			// Provider callback carries no user token
			payments.POST("/callback", paymentHandler.Callback)
		}

		organizer := v1.Group("/organizer", requireAuth, organizerOnly)
		{
			organizer.GET("/events", eventHandler.ListMyEvents)
			organizer.GET("/dashboard", reportHandler.OrganizerDashboard)
			organizer.GET("/events/stats", reportHandler.OrganizerEventStats)
		}

		admin := v1.Group("/admin", requireAuth, adminOnly)
		{
			admin.GET("/events/pending", eventHandler.ListPendingEvents)
			admin.PATCH("/events/:id/approve", eventHandler.ApproveEvent)
			admin.GET("/dashboard", reportHandler.AdminDashboard)
			admin.GET("/reports", reportHandler.OrderReport)
			admin.GET("/logs", reportHandler.RecentAuditLogs)
			admin.GET("/users", userHandler.ListUsers)
		}

		users := v1.Group("/users", requireAuth, adminOnly)
		{
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.PATCH("/:id/status", userHandler.UpdateStatus)
			users.PATCH("/:id/role", userHandler.UpdateRole)
		}
	}

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
