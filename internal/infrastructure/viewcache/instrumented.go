package viewcache

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/domain/view"
	"github.com/janhq/companion-api/internal/infrastructure/metrics"
)

// Instrumented records hits, misses and invalidations of the wrapped cache.
type Instrumented struct {
	next    view.Cache
	backend string
	log     zerolog.Logger
}

func NewInstrumented(next view.Cache, backend string, log zerolog.Logger) *Instrumented {
	return &Instrumented{
		next:    next,
		backend: backend,
		log:     log.With().Str("component", "view-cache").Str("backend", backend).Logger(),
	}
}

func (i *Instrumented) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	payload, ok, err := i.next.Get(ctx, path, variant)
	switch {
	case err != nil:
		metrics.RecordViewCacheLookup(path, "error")
	case ok:
		metrics.RecordViewCacheLookup(path, "hit")
	default:
		metrics.RecordViewCacheLookup(path, "miss")
	}
	return payload, ok, err
}

func (i *Instrumented) Set(ctx context.Context, path, variant string, payload []byte, ttl time.Duration) error {
	return i.next.Set(ctx, path, variant, payload, ttl)
}

func (i *Instrumented) Invalidate(ctx context.Context, path string) error {
	err := i.next.Invalidate(ctx, path)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordViewInvalidation(path, status)
	i.log.Debug().Str("path", path).Str("status", status).Msg("view invalidated")
	return err
}

// Close releases the wrapped backend when it holds connections.
func (i *Instrumented) Close() error {
	if closer, ok := i.next.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
