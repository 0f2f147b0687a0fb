package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studiohub/api/internal/config"
	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/handler"
	"github.com/studiohub/api/internal/jobs"
	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/repository"
	"github.com/studiohub/api/internal/service"
	"github.com/studiohub/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	eventRepo := repository.NewEventRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize push hub for SSE delivery
	pushHub := service.NewPushHub()
	defer pushHub.Close()

	// Initialize services
	accessService := service.NewAccessService(cfg.Admin.SuperAdminEmail)

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  tokenRepo,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	registrationService := service.NewRegistrationService(service.RegistrationServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	notificationService := service.NewNotificationService(service.NotificationServiceConfig{
		NotificationRepo: notificationRepo,
		Hub:              pushHub,
	})

	bookingService := service.NewBookingService(service.BookingServiceConfig{
		BookingRepo: bookingRepo,
		Access:      accessService,
	})

	inventoryService := service.NewInventoryService(service.InventoryServiceConfig{
		ItemRepo: inventoryRepo,
		Access:   accessService,
	})

	ticketService := service.NewTicketService(service.TicketServiceConfig{
		TicketRepo: ticketRepo,
		Access:     accessService,
	})

	wishlistService := service.NewWishlistService(service.WishlistServiceConfig{
		WishlistRepo: wishlistRepo,
		Access:       accessService,
	})

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo: eventRepo,
		Access:    accessService,
	})

	taskService := service.NewTaskService(service.TaskServiceConfig{
		TaskRepo: taskRepo,
		Access:   accessService,
		Notifier: notificationService,
	})

	adminUserService := service.NewAdminUserService(service.AdminUserServiceConfig{
		UserRepo: userRepo,
		Access:   accessService,
		Tokens:   tokenService,
	})

	snapshotService := service.NewSnapshotService(service.SnapshotServiceConfig{
		UserRepo:         userRepo,
		BookingRepo:      bookingRepo,
		InventoryRepo:    inventoryRepo,
		TicketRepo:       ticketRepo,
		WishlistRepo:     wishlistRepo,
		EventRepo:        eventRepo,
		TaskRepo:         taskRepo,
		NotificationRepo: notificationRepo,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Initialize booking status processor
	bookingProcessor := jobs.NewBookingStatusProcessor(bookingService, cfg.Jobs.BookingStatusInterval)
	bookingProcessor.Start()
	defer bookingProcessor.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(snapshotService)
	authHandler := handler.NewAuthHandler(authService, registrationService)
	bookingHandler := handler.NewBookingHandler(bookingService, authService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, authService)
	ticketHandler := handler.NewTicketHandler(ticketService, authService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, authService)
	eventHandler := handler.NewEventHandler(eventService, authService)
	taskHandler := handler.NewTaskHandler(taskService, authService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	snapshotHandler := handler.NewSnapshotHandler(snapshotService)
	streamHandler := handler.NewStreamHandler(pushHub)
	adminUsersHandler := handler.NewAdminUsersHandler(adminUserService, authService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register/initiate", authHandler.RegisterInitiate)
	mux.HandleFunc("POST /v1/auth/register/confirm", authHandler.RegisterConfirm)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(tokenService)
	adminMiddleware := middleware.AdminAuth()
	mux.Handle("POST /v1/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PATCH /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.UpdateMe)))
	mux.Handle("POST /v1/auth/password", authMiddleware(http.HandlerFunc(authHandler.ChangePassword)))

	// Booking endpoints
	mux.Handle("GET /v1/bookings", authMiddleware(http.HandlerFunc(bookingHandler.List)))
	mux.Handle("POST /v1/bookings", authMiddleware(http.HandlerFunc(bookingHandler.Create)))
	mux.Handle("GET /v1/bookings/day/{date}", authMiddleware(http.HandlerFunc(bookingHandler.Day)))
	mux.Handle("GET /v1/bookings/{id}", authMiddleware(http.HandlerFunc(bookingHandler.GetByID)))
	mux.Handle("PATCH /v1/bookings/{id}", authMiddleware(http.HandlerFunc(bookingHandler.Update)))
	mux.Handle("DELETE /v1/bookings/{id}", authMiddleware(http.HandlerFunc(bookingHandler.Delete)))
	mux.Handle("POST /v1/bookings/{id}/start", authMiddleware(http.HandlerFunc(bookingHandler.Start)))
	mux.Handle("POST /v1/bookings/{id}/complete", authMiddleware(http.HandlerFunc(bookingHandler.Complete)))
	mux.Handle("POST /v1/bookings/{id}/cancel", authMiddleware(http.HandlerFunc(bookingHandler.Cancel)))

	// Calendar and planner endpoints
	mux.Handle("GET /v1/calendar/{year}/{month}", authMiddleware(http.HandlerFunc(bookingHandler.Month)))
	mux.Handle("GET /v1/planner/week/{date}", authMiddleware(http.HandlerFunc(bookingHandler.Week)))

	// Inventory endpoints
	mux.Handle("GET /v1/inventory", authMiddleware(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /v1/inventory", authMiddleware(http.HandlerFunc(inventoryHandler.Create)))
	mux.Handle("GET /v1/inventory/{id}", authMiddleware(http.HandlerFunc(inventoryHandler.GetByID)))
	mux.Handle("PATCH /v1/inventory/{id}", authMiddleware(http.HandlerFunc(inventoryHandler.Update)))
	mux.Handle("DELETE /v1/inventory/{id}", authMiddleware(http.HandlerFunc(inventoryHandler.Delete)))

	// Ticket endpoints
	mux.Handle("GET /v1/tickets", authMiddleware(http.HandlerFunc(ticketHandler.List)))
	mux.Handle("POST /v1/tickets", authMiddleware(http.HandlerFunc(ticketHandler.Create)))
	mux.Handle("GET /v1/tickets/{id}", authMiddleware(http.HandlerFunc(ticketHandler.GetByID)))
	mux.Handle("PATCH /v1/tickets/{id}/status", authMiddleware(http.HandlerFunc(ticketHandler.SetStatus)))
	mux.Handle("PATCH /v1/tickets/{id}/assignee", authMiddleware(http.HandlerFunc(ticketHandler.Assign)))
	mux.Handle("POST /v1/tickets/{id}/comments", authMiddleware(http.HandlerFunc(ticketHandler.AddComment)))
	mux.Handle("DELETE /v1/tickets/{id}", authMiddleware(http.HandlerFunc(ticketHandler.Delete)))

	// Wishlist endpoints
	mux.Handle("GET /v1/wishlist", authMiddleware(http.HandlerFunc(wishlistHandler.List)))
	mux.Handle("POST /v1/wishlist", authMiddleware(http.HandlerFunc(wishlistHandler.Create)))
	mux.Handle("GET /v1/wishlist/{id}", authMiddleware(http.HandlerFunc(wishlistHandler.GetByID)))
	mux.Handle("POST /v1/wishlist/{id}/vote", authMiddleware(http.HandlerFunc(wishlistHandler.ToggleVote)))
	mux.Handle("PATCH /v1/wishlist/{id}/status", authMiddleware(http.HandlerFunc(wishlistHandler.SetStatus)))
	mux.Handle("POST /v1/wishlist/{id}/comments", authMiddleware(http.HandlerFunc(wishlistHandler.AddComment)))
	mux.Handle("DELETE /v1/wishlist/{id}", authMiddleware(http.HandlerFunc(wishlistHandler.Delete)))

	// Event endpoints
	mux.Handle("GET /v1/events", authMiddleware(http.HandlerFunc(eventHandler.List)))
	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /v1/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.GetByID)))
	mux.Handle("PATCH /v1/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /v1/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("POST /v1/events/{id}/register", authMiddleware(http.HandlerFunc(eventHandler.Register)))
	mux.Handle("DELETE /v1/events/{id}/register", authMiddleware(http.HandlerFunc(eventHandler.Unregister)))

	// Task planner endpoints
	mux.Handle("GET /v1/tasks", authMiddleware(http.HandlerFunc(taskHandler.List)))
	mux.Handle("POST /v1/tasks", authMiddleware(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("GET /v1/tasks/day/{date}", authMiddleware(http.HandlerFunc(taskHandler.Day)))
	mux.Handle("POST /v1/tasks/{id}/toggle", authMiddleware(http.HandlerFunc(taskHandler.Toggle)))
	mux.Handle("PATCH /v1/tasks/{id}", authMiddleware(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /v1/tasks/{id}", authMiddleware(http.HandlerFunc(taskHandler.Delete)))

	// Notification endpoints
	mux.Handle("GET /v1/notifications", authMiddleware(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("POST /v1/notifications/read-all", authMiddleware(http.HandlerFunc(notificationHandler.MarkAllRead)))
	mux.Handle("POST /v1/notifications/{id}/read", authMiddleware(http.HandlerFunc(notificationHandler.MarkRead)))

	// Domain store snapshot
	mux.Handle("GET /v1/snapshot", authMiddleware(http.HandlerFunc(snapshotHandler.Get)))

	// SSE push stream
	mux.Handle("GET /v1/events/stream", authMiddleware(http.HandlerFunc(streamHandler.Stream)))

	// Admin user management endpoints - requires admin role
	mux.Handle("GET /v1/admin/users", middleware.Chain(http.HandlerFunc(adminUsersHandler.List), authMiddleware, adminMiddleware))
	mux.Handle("GET /v1/admin/users/{id}", middleware.Chain(http.HandlerFunc(adminUsersHandler.GetByID), authMiddleware, adminMiddleware))
	mux.Handle("PATCH /v1/admin/users/{id}/role", middleware.Chain(http.HandlerFunc(adminUsersHandler.SetRole), authMiddleware, adminMiddleware))
	mux.Handle("PATCH /v1/admin/users/{id}/verify", middleware.Chain(http.HandlerFunc(adminUsersHandler.SetVerified), authMiddleware, adminMiddleware))
	mux.Handle("DELETE /v1/admin/users/{id}", middleware.Chain(http.HandlerFunc(adminUsersHandler.Delete), authMiddleware, adminMiddleware))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
