package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/servana/servana-payment-service/internal/app/background"
	"github.com/servana/servana-payment-service/internal/config"
	"github.com/servana/servana-payment-service/internal/delivery/http/api"
	"github.com/servana/servana-payment-service/internal/delivery/http/handlers"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
	"github.com/servana/servana-payment-service/internal/infrastructure/logger"
	"github.com/servana/servana-payment-service/internal/infrastructure/metrics"
	"github.com/servana/servana-payment-service/internal/infrastructure/migrate"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/repository"
	"github.com/servana/servana-payment-service/internal/usecase"
	escrowuc "github.com/servana/servana-payment-service/internal/usecase/escrow"
	paymentuc "github.com/servana/servana-payment-service/internal/usecase/payment"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)

	// Init repos
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	idempotencyRepo := repository.NewDefaultIdempotencyRepository(db)

	// Init wallet handler
	httpWalletHandler, err := handlers.NewHTTPWalletHandler(fmt.Sprintf("%s:%s", cfg.WalletService.Host, cfg.WalletService.Port))
	if err != nil {
		log.Fatalf("failed to init wallet handler: %v", err)
	}

	paymentMetrics := metrics.NewPaymentMetrics()
	eventLog := logger.NewPGPaymentEventLogger(db)

	splitter := usecase.NewSplitCalculator(cfg.Policy)
	// Seller history comes from the payment store itself.
	escrowPolicy := usecase.NewEscrowPolicy(cfg.Policy, paymentRepo)

	// Init payment usecase
	paymentUsecase := paymentuc.NewDefaultPaymentUsecase(
		paymentRepo,
		idempotencyRepo,
		splitter,
		escrowPolicy,
		httpWalletHandler,
		pub,
		eventLog,
		paymentMetrics,
		cfg.Policy.EscrowHoldDays,
	)

	// Init escrow usecase
	escrowUsecase := escrowuc.NewDefaultEscrowUsecase(
		escrowRepo,
		paymentRepo,
		httpWalletHandler,
		pub,
		paymentMetrics,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := background.NewBackgroundTasks(escrowUsecase, time.Minute)
	tasks.StartAll(ctx)

	router := api.NewRouter(
		api.NewPaymentHandler(paymentUsecase),
		api.NewEscrowHandler(escrowUsecase),
		api.NewBalanceHandler(httpWalletHandler),
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("payment service listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
