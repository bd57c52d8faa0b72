package repository

import (
	"github.com/google/wire"

	"github.com/janhq/companion-api/internal/infrastructure/database"
	"github.com/janhq/companion-api/internal/infrastructure/repository/bookmarkrepo"
	"github.com/janhq/companion-api/internal/infrastructure/repository/companionrepo"
	"github.com/janhq/companion-api/internal/infrastructure/repository/sessionrepo"
)

var RepositoryProvider = wire.NewSet(
	database.NewDatabase,
	companionrepo.NewCompanionGormRepository,
	bookmarkrepo.NewBookmarkGormRepository,
	sessionrepo.NewSessionGormRepository,
)
