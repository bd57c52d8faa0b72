package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/interfaces/httpserver/handlers"
	v1 "github.com/janhq/companion-api/internal/interfaces/httpserver/routes/v1"
)

// Provider registers every versioned route set.
type Provider struct {
	v1 *v1.Routes
}

func NewProvider(cfg *config.Config, handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		v1: v1.NewRoutes(cfg, handlerProvider),
	}
}

func (p *Provider) Register(engine *gin.Engine) {
	p.v1.Register(engine)
}
