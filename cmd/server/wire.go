//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/domain"
	"github.com/janhq/companion-api/internal/domain/catalog"
	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/infrastructure/auth"
	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/logger"
	"github.com/janhq/companion-api/internal/infrastructure/repository"
	"github.com/janhq/companion-api/internal/infrastructure/viewcache"
	"github.com/janhq/companion-api/internal/interfaces/httpserver"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/middlewares"
)

var infrastructureSet = wire.NewSet(
	newDatabaseConfig,
	newGormDB,
	repository.RepositoryProvider,
	viewcache.New,
	wire.Bind(new(view.Invalidator), new(view.Cache)),
	newCatalog,
	auth.NewValidator,
	auth.NewEntitlementsClient,
	auth.NewResolver,
	wire.Bind(new(middlewares.IdentityResolver), new(*auth.Resolver)),
	wire.Bind(new(httpserver.ReadinessChecker), new(*database.Database)),
)

// BuildApplication assembles the companion service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		infrastructureSet,
		domain.ServiceProvider,
		newBookmarkService,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.Load(cfg.CatalogPath)
}
