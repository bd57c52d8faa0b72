package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/infrastructure/metrics"
)

// Entitlements is the plan and feature set granted to a user.
type Entitlements struct {
	Plans    []string `json:"plans"`
	Features []string `json:"features"`
}

// EntitlementsClient fetches entitlements from the identity provider and caches them.
type EntitlementsClient struct {
	http  *resty.Client
	cache *lru.Cache
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

type cachedEntitlements struct {
	value     Entitlements
	expiresAt time.Time
}

// NewEntitlementsClient returns nil when no entitlements endpoint is configured.
func NewEntitlementsClient(cfg *config.Config, log zerolog.Logger) (*EntitlementsClient, error) {
	if cfg.EntitlementsURL == "" {
		return nil, nil
	}

	cache, err := lru.New(cfg.EntitlementsCacheSize)
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetBaseURL(cfg.EntitlementsURL).
		SetTimeout(5*time.Second).
		SetHeader("User-Agent", "companion-api/1.0").
		SetHeader("Accept", "application/json")
	if cfg.EntitlementsAPIKey != "" {
		client.SetAuthToken(cfg.EntitlementsAPIKey)
	}

	return &EntitlementsClient{
		http:  client,
		cache: cache,
		ttl:   cfg.EntitlementsCacheTTL,
		log:   log.With().Str("component", "entitlements-client").Logger(),
		now:   time.Now,
	}, nil
}

// Lookup returns the entitlements of userID, served from cache while fresh.
func (c *EntitlementsClient) Lookup(ctx context.Context, userID string) (Entitlements, error) {
	if raw, ok := c.cache.Get(userID); ok {
		entry := raw.(cachedEntitlements)
		if c.now().Before(entry.expiresAt) {
			metrics.RecordEntitlementLookup("cache", "ok")
			return entry.value, nil
		}
		c.cache.Remove(userID)
	}

	var result Entitlements
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/users/" + url.PathEscape(userID) + "/entitlements")
	if err != nil {
		metrics.RecordEntitlementLookup("remote", "error")
		return Entitlements{}, fmt.Errorf("failed to query entitlements: %w", err)
	}
	if resp.IsError() {
		metrics.RecordEntitlementLookup("remote", "error")
		return Entitlements{}, fmt.Errorf("entitlements API error (status %d): %s", resp.StatusCode(), resp.String())
	}

	metrics.RecordEntitlementLookup("remote", "ok")
	c.cache.Add(userID, cachedEntitlements{value: result, expiresAt: c.now().Add(c.ttl)})
	c.log.Debug().Str("user_id", userID).Int("plans", len(result.Plans)).Int("features", len(result.Features)).Msg("entitlements fetched")
	return result, nil
}
