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
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pixiu/docs"
	"pixiu/internal/config"
	"pixiu/internal/database"
	"pixiu/internal/database/migration"
	handlers "pixiu/internal/http/handler"
	"pixiu/internal/http/middleware"
	"pixiu/internal/logger"
	"pixiu/internal/otel"
	"pixiu/internal/repository/postgres"
	"pixiu/internal/service"
	"pixiu/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title pixiu API
// @version 1.0
// @description Funds, debts and properties of the pixiu ledger.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrate := func(ctx context.Context) error {
		return migration.EnsureMigrated(ctx, db, log, cfg.Database.Host)
	}
	if err := migrate(ctx); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Frontend assets are optional; without MinIO only the API is served.
	var assets storage.Assets
	if cfg.MinIO.Endpoint != "" {
		assets, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal("failed to initialize asset storage", zap.Error(err))
		}
	} else {
		log.Info("asset storage disabled")
	}

	fundSvc := service.NewFundService(postgres.NewFundPostgres(db))
	balanceSvc := service.NewBalanceService(postgres.NewBalancePostgres(db))

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer, "/health", "/healthz")
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// otelfiber first so the logger sees the request span.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Funds:    fundSvc,
		Balances: balanceSvc,
		Assets:   assets,
		Migrate:  migrate,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", zap.Error(err))
	}

	tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(tctx); err != nil {
		log.Error("tracing shutdown failed", zap.Error(err))
	}
}
