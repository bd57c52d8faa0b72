package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/domain/bookmark"
	"github.com/janhq/companion-api/internal/domain/catalog"
	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/dashboard"
	"github.com/janhq/companion-api/internal/domain/sessionhistory"
	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/infrastructure/auth"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/logger"
	"github.com/janhq/companion-api/internal/infrastructure/observability"
	"github.com/janhq/companion-api/internal/infrastructure/repository/bookmarkrepo"
	"github.com/janhq/companion-api/internal/infrastructure/repository/companionrepo"
	"github.com/janhq/companion-api/internal/infrastructure/repository/sessionrepo"
	"github.com/janhq/companion-api/internal/infrastructure/viewcache"
	"github.com/janhq/companion-api/internal/interfaces/httpserver"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
)

// @title Companion API
// @version 1.0
// @description Tutoring companion profiles, bookmarks and session history
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	gormDB, err := database.Connect(newDatabaseConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := database.Migrate(ctx, gormDB, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	db := database.NewDatabase(gormDB)

	cache, err := viewcache.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize view cache")
	}
	defer closeCache(cache, log)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}
	defer authValidator.Close()

	entitlements, err := auth.NewEntitlementsClient(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize entitlements client")
	}
	resolver := auth.NewResolver(authValidator, entitlements, log)

	companionService := companion.NewService(companionrepo.NewCompanionGormRepository(db), cache, log)
	sessionService := sessionhistory.NewService(sessionrepo.NewSessionGormRepository(db), cache, log)
	bookmarkService := newBookmarkService(cfg, bookmarkrepo.NewBookmarkGormRepository(db), cache, db, log)
	dashboardService := dashboard.NewService(companionService, sessionService, cat)

	handlerProvider := handlers.NewProvider(cfg, companionService, bookmarkService, sessionService, dashboardService, cache)
	httpServer, err := httpserver.New(cfg, log, resolver, handlerProvider, db)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize http server")
	}
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

// newBookmarkService opts into transactional bookmark writes when configured.
func newBookmarkService(
	cfg *config.Config,
	repo bookmark.Repository,
	views view.Invalidator,
	db *database.Database,
	log zerolog.Logger,
) *bookmark.Service {
	if cfg.BookmarkAtomicWrites {
		return bookmark.NewService(repo, views, log, bookmark.WithTransactor(db))
	}
	return bookmark.NewService(repo, views, log)
}

func closeCache(cache view.Cache, log zerolog.Logger) {
	closer, ok := cache.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Warn().Err(err).Msg("close view cache")
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
