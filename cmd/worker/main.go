package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/otpauth/backend/internal/notifier"
	"github.com/otpauth/backend/libs/config"
	"github.com/otpauth/backend/libs/logger"
	"go.uber.org/zap"
)

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

	logger.Logger.Info("Starting OTP email worker")

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				notifier.QueueEmail: 5,
				"default":           1,
			},
			Logger: logger.Logger.Sugar(),
		},
	)

	smtpNotifier := notifier.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger.Logger)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.Handle(notifier.TaskTypeEmail, notifier.NewEmailTaskHandler(smtpNotifier, logger.Logger))

	// Start worker
	if err := srv.Start(mux); err != nil {
		logger.Logger.Fatal("Failed to start worker", zap.Error(err))
	}

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}
