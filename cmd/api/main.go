package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	_ "github.com/otpauth/backend/docs"
	"github.com/otpauth/backend/internal/credentials"
	"github.com/otpauth/backend/internal/handlers"
	"github.com/otpauth/backend/internal/notifier"
	"github.com/otpauth/backend/internal/otp"
	"github.com/otpauth/backend/internal/repositories"
	"github.com/otpauth/backend/internal/services"
	"github.com/otpauth/backend/libs/auth/middleware"
	"github.com/otpauth/backend/libs/auth/service"
	"github.com/otpauth/backend/libs/config"
	"github.com/otpauth/backend/libs/logger"
	loggerMiddleware "github.com/otpauth/backend/libs/logger/middleware"
	sharedMiddleware "github.com/otpauth/backend/libs/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title OTP Auth API
// @version 1.0
// @description User registration, login, OTP email verification and admin user management

// @host localhost:9001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting OTP Auth Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is only needed by the redis OTP store and the queued notifier
	var rdb *redis.Client
	if cfg.OTP.Backend == config.OTPBackendRedis || cfg.Notifier == config.NotifierQueue {
		rdb, err = connectRedis(cfg.Redis)
		if err != nil {
			logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	// Initialize OTP store
	var otpStore services.OTPStore
	switch cfg.OTP.Backend {
	case config.OTPBackendRedis:
		otpStore = otp.NewRedisStore(rdb, cfg.OTP.TTL)
	default:
		memoryStore := otp.NewMemoryStore(cfg.OTP.TTL)
		if cfg.OTP.TTL > 0 {
			sweeper, err := memoryStore.StartSweeper(cfg.OTP.SweepSchedule, logger.Logger)
			if err != nil {
				logger.Logger.Fatal("Failed to start OTP sweeper", zap.Error(err))
			}
			defer sweeper.Stop()
		}
		otpStore = memoryStore
	}

	// Initialize notifier
	var otpNotifier services.Notifier
	switch cfg.Notifier {
	case config.NotifierQueue:
		asynqClient := asynq.NewClient(redisClientOpt(cfg.Redis))
		defer asynqClient.Close()
		otpNotifier = notifier.NewQueueNotifier(asynqClient, logger.Logger)
	case config.NotifierLog:
		otpNotifier = notifier.NewLogNotifier(logger.Logger)
	default:
		otpNotifier = notifier.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger.Logger)
	}

	hasher, err := credentials.New(cfg.PasswordScheme)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize password hasher", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, otpStore, otpNotifier, tokenGenerator, hasher, cfg.OTP.DeliveryWait, logger.Logger)
	adminService := services.NewAdminService(userRepo, hasher, logger.Logger)
	profileService := services.NewProfileService(userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.RequireAuthenticated(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestBytes))

	// Swagger documentation
	r.Get("/api-docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api-docs/doc.json"),
	))

	authHandler.RegisterRoutes(r)
	profileHandler.RegisterRoutes(r, authMiddleware)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin)
		adminHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// connectRedis connects to Redis and checks the connection
func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

// redisClientOpt returns asynq connection options for the configured Redis
func redisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, path string) error {
	// Service-specific migration table name avoids conflicts with other services sharing the schema
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "auth_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Fall back to the parent directory when running from cmd/api
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := os.Stat("../../" + path); err == nil {
			path = "../../" + path
		}
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
