package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"filegate/docs"
	"filegate/internal/auth"
	"filegate/internal/config"
	"filegate/internal/database"
	"filegate/internal/database/migration"
	handlers "filegate/internal/http/handler"
	"filegate/internal/http/middleware"
	"filegate/internal/logging"
	"filegate/internal/model"
	"filegate/internal/otel"
	"filegate/internal/repository/postgres"
	"filegate/internal/service"
	"filegate/internal/storage"
)

// @title File Gateway API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel, cfg.Location())
	if err != nil {
		// Logger is not available yet; fall back to a default one.
		zap.NewExample().Fatal("invalid log level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server_exit", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultType, err := model.ParseStorageType(cfg.DefaultStorageType)
	if err != nil {
		return err
	}

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// PostgreSQL holds the structured backend (pooled via database/sql).
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	objStore, err := storage.NewObjectStore(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	storageMetrics, err := storage.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	structured := storageMetrics.Instrument(storage.NewStructuredBackend(postgres.NewFilePostgres(db)))
	blob := storageMetrics.Instrument(storage.NewBlobBackend(objStore))
	svc := service.NewStorageManager(structured, blob)

	authn, err := auth.New(cfg.Auth)
	if err != nil {
		return err
	}

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme; APP_HOST covers requests without a Host header.
	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = utils.CopyString(strings.TrimSpace(strings.Split(proto, ",")[0]))
		}

		host := cfg.AppHost
		if h := c.Get(fiber.HeaderHost); h != "" {
			host = utils.CopyString(h)
		}
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, db, svc, authn, handlers.Options{
		DefaultStorageType: defaultType,
		Logger:             log,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("server_listening", zap.String("addr", addr), zap.String("default_storage", string(defaultType)))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
