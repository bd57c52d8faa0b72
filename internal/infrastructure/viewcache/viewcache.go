package viewcache

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/domain/view"
)

// New builds the configured view cache backend.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (view.Cache, error) {
	backend := strings.ToLower(cfg.ViewCacheBackend)
	switch backend {
	case "redis":
		cache, err := NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("view cache backed by Redis")
		return NewInstrumented(cache, backend, log), nil
	case "memory", "":
		cache, err := NewMemoryCache(cfg.ViewCacheSize)
		if err != nil {
			return nil, err
		}
		return NewInstrumented(cache, "memory", log), nil
	default:
		return nil, fmt.Errorf("unsupported view cache backend %q", cfg.ViewCacheBackend)
	}
}
