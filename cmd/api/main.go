package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tavola/internal/api"
	"tavola/internal/config"
	"tavola/internal/dashboard"
	"tavola/internal/database"
	"tavola/internal/domain"
	"tavola/internal/events"
	"tavola/internal/export"
	"tavola/internal/google"
	"tavola/internal/logging"
	"tavola/internal/metrics"
	"tavola/internal/models"
	"tavola/internal/notify"
	"tavola/internal/repository"
	"tavola/internal/service"
	"tavola/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	if err := prepareDirectories(cfg); err != nil {
		return err
	}

	db, err := initDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sessions := initSessions(redisClient, logger)
	syncWorker := initSheetsSync(ctx, cfg, redisClient, logger)

	eventBus := events.NewEventBus()
	initStaffNotifier(cfg, eventBus, logger)

	state := dashboard.New()
	bookings := service.NewBookingService(
		db, state, eventBus, syncWorker,
		cfg.Booking.MaxPartySize, cfg.Booking.MaxBookingDays,
		logger,
	)
	content := service.NewContentService(db, logger)

	result := bookings.LoadBookings(ctx)
	logger.Info().
		Int("bookings", len(result.Bookings)).
		Str("data_source", result.Source).
		Msg("booking state loaded")

	startMetrics(ctx, cfg, logger)
	startBackups(ctx, cfg, logger)

	exporter := export.NewExporter(db, cfg.Exports.Path, logger)
	server := api.NewServer(cfg, bookings, content, state, sessions, exporter, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "main")

	return cfg, &logger, closer, nil
}

func prepareDirectories(cfg *config.Config) error {
	dirs := []string{
		filepath.Dir(cfg.Database.Path),
		cfg.Exports.Path,
	}
	if cfg.Backup.Enabled && cfg.Backup.StoragePath != "" {
		dirs = append(dirs, cfg.Backup.StoragePath)
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	menu, testimonials, err := loadSeedContent(cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := db.SeedContent(context.Background(), menu, testimonials); err != nil {
		logger.Warn().Err(err).Msg("seed content failed, continuing with existing rows")
	}
	return db, nil
}

// loadSeedContent reads the optional content seed file. Without one the
// built-in menu and testimonials are used, so a fresh database still serves
// the full site.
func loadSeedContent(cfg *config.Config, logger *zerolog.Logger) ([]models.MenuItem, []models.Testimonial, error) {
	if cfg.Content.SeedFile == "" {
		return models.FallbackMenu, models.FallbackTestimonials, nil
	}

	data, err := os.ReadFile(cfg.Content.SeedFile)
	if err != nil {
		logger.Error().Err(err).Str("seed_file", cfg.Content.SeedFile).Msg("read content seed")
		return nil, nil, err
	}

	var seed struct {
		Menu         []models.MenuItem    `yaml:"menu"`
		Testimonials []models.Testimonial `yaml:"testimonials"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		logger.Error().Err(err).Str("seed_file", cfg.Content.SeedFile).Msg("parse content seed")
		return nil, nil, err
	}
	return seed.Menu, seed.Testimonials, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSessions picks the session store. With redis available sessions
// survive restarts and fail over to memory when redis drops mid-flight.
func initSessions(redisClient *redis.Client, logger *zerolog.Logger) domain.SessionRepository {
	memory := repository.NewMemorySessionRepository()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverSessionRepository(
		repository.NewRedisSessionRepository(redisClient),
		memory,
		logger,
	)
}

func initSheetsSync(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.SyncWorker {
	if cfg.Google.CredentialsFile == "" || cfg.Google.BookingSpreadsheetID == "" {
		return nil
	}

	sheetsService, err := google.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.BookingSpreadsheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}
	if err := sheetsService.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("google sheets connection test failed, continuing without sheets")
		return nil
	}
	logger.Info().Msg("google sheets connected")

	w := worker.NewSheetsWorker(sheetsService, redisClient, worker.RetryPolicy{}, logger)
	go w.Start(ctx)
	return w
}

func initStaffNotifier(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Telegram.BotToken == "" || len(cfg.Telegram.StaffChatIDs) == 0 {
		return
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without staff notifications")
		return
	}

	notify.NewStaffNotifier(bot, cfg.Telegram.StaffChatIDs, logger).Subscribe(bus)
	logger.Info().Int("chats", len(cfg.Telegram.StaffChatIDs)).Msg("staff notifications enabled")
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func startBackups(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}
	backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
	go backup.Start(ctx)
}
