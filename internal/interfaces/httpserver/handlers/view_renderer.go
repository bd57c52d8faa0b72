package handlers

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/domain/view"
)

// viewRenderer serves JSON views through the view cache. Cache failures fall through to a
// fresh render.
type viewRenderer struct {
	cache view.Cache
	ttl   time.Duration
}

// ViewVariant keys a cached view by viewer and canonical query.
func ViewVariant(userID string, query url.Values) string {
	return userID + "?" + query.Encode()
}

func (r viewRenderer) render(ctx context.Context, path, variant string, build func() (any, error)) ([]byte, error) {
	log := zerolog.Ctx(ctx)
	if r.cache != nil {
		payload, ok, err := r.cache.Get(ctx, path, variant)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("view cache read failed")
		} else if ok {
			return payload, nil
		}
	}

	value, err := build()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, path, variant, payload, r.ttl); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("view cache write failed")
		}
	}
	return payload, nil
}
