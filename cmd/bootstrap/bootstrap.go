package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"clinic-booking-service/config"
	deliveryHttp "clinic-booking-service/internal/delivery/http"
	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/infrastructure/cache"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/infrastructure/messaging"
	"clinic-booking-service/internal/repository"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/clock"
	"clinic-booking-service/pkg/jwt"
	"clinic-booking-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Producer    *messaging.KafkaProducer
	RateLimiter *middleware.RateLimitMiddleware
	Server      *http.Server
}

// SetupLogger configures the shared logrus logger.
func SetupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Kafka is optional
	app.Producer = messaging.NewKafkaProducer(cfg.Kafka, logrus.StandardLogger())

	app.Server, app.RateLimiter = initializeServer(cfg, db, redisClient, app.Producer)

	return app, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, producer *messaging.KafkaProducer) (*http.Server, *middleware.RateLimitMiddleware) {
	log := logrus.StandardLogger()
	clk := clock.New()
	loc := cfg.Booking.Location

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	txManager := database.NewTxManager(db)

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	dayScheduleRepo := repository.NewDayScheduleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	availabilityCache := service.NewRedisAvailabilityCache(redisClient, log, clk, cfg.Booking.AvailabilityTTL, loc)
	eventPublisher := service.NewEventPublisher(producer)
	tokenStore := service.NewRedisTokenStore(redisClient)

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(txManager, log, dayScheduleRepo, appointmentRepo, availabilityCache)
	bookingUsecase := usecase.NewBookingUsecase(txManager, log, clk, loc, doctorProfileRepo, dayScheduleRepo, appointmentRepo, auditService, availabilityCache, eventPublisher)
	cancellationUsecase := usecase.NewCancellationUsecase(txManager, log, clk, loc, appointmentRepo, auditService, availabilityCache, eventPublisher)
	completionUsecase := usecase.NewCompletionUsecase(txManager, log, clk, appointmentRepo, auditService, availabilityCache, eventPublisher)
	scheduleUsecase := usecase.NewDoctorScheduleUsecase(txManager, log, clk, loc, dayScheduleRepo, auditService, availabilityCache, eventPublisher)
	queryUsecase := usecase.NewAppointmentQueryUsecase(txManager, log, appointmentRepo)

	// Initialize handlers
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, cancellationUsecase, queryUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(cancellationUsecase, completionUsecase, queryUsecase, customValidator)
	doctorScheduleHandler := handler.NewDoctorScheduleHandler(scheduleUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		availabilityHandler,
		bookingHandler,
		doctorHandler,
		doctorScheduleHandler,
		authMiddleware,
		rateLimitMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           http.TimeoutHandler(httpRouter, cfg.Booking.RequestTimeout, `{"success":false,"message":"Request timed out"}`),
		ReadHeaderTimeout: cfg.Booking.RequestTimeout,
	}
	return server, rateLimitMiddleware
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Booking.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
	return nil
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.RateLimiter != nil {
		app.RateLimiter.Stop()
	}

	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			logrus.Warnf("Failed to close Kafka producer: %v", err)
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
