package domain

import (
	"github.com/google/wire"

	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/dashboard"
	"github.com/janhq/companion-api/internal/domain/sessionhistory"
)

// ServiceProvider provides all domain services.
var ServiceProvider = wire.NewSet(
	companion.NewService,
	sessionhistory.NewService,
	dashboard.NewService,
	wire.Bind(new(dashboard.CompanionLister), new(companion.Service)),
	wire.Bind(new(dashboard.SessionLister), new(*sessionhistory.Service)),
)
