package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfilment/cmd"
	"fulfilment/internal/adapters/out/postgres/deliveryrepo"
	"fulfilment/internal/adapters/out/postgres/notificationrepo"
	"fulfilment/internal/adapters/out/postgres/orderrepo"
	"fulfilment/internal/adapters/out/postgres/riderrepo"
	"fulfilment/internal/adapters/out/postgres/webhookrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config, err := getConfigs()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := openDatabase(config)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		return fmt.Errorf("failed to build composition root: %w", err)
	}
	defer func() {
		if closeErr := root.Close(); closeErr != nil {
			logger.Error("Failed to close composition root", "error", closeErr)
		}
	}()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	root.CreateServer().RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.InfoContext(groupCtx, "HTTP server starting", "port", config.HTTPPort)

		if serveErr := e.Start("0.0.0.0:" + config.HTTPPort); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("Shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which the webhook and notification repositories rely on.
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&riderrepo.RiderDTO{},
		&notificationrepo.NotificationDTO{},
		&webhookrepo.WebhookTokenDTO{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

func getConfigs() (cmd.Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// Env vars may come from the environment directly.
		slog.Warn("No .env file loaded", "error", err)
	}

	baseFee, err := envInt64("TARIFF_BASE_FEE_KOBO", 50000)
	if err != nil {
		return cmd.Config{}, err
	}

	perKmRate, err := envInt64("TARIFF_PER_KM_RATE_KOBO", 5000)
	if err != nil {
		return cmd.Config{}, err
	}

	return cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                envOrDefault("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic: envOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		WhatsAppBaseURL:       os.Getenv("WHATSAPP_BASE_URL"),
		WhatsAppAPIKey:        os.Getenv("WHATSAPP_API_KEY"),
		TariffBaseFeeKobo:     baseFee,
		TariffPerKmRateKobo:   perKmRate,
		NotificationSchedule:  envOrDefault("NOTIFICATION_SCHEDULE", "*/5 * * * * *"),
	}, nil
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
