package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/config"
	"github.com/janhq/companion-api/internal/utils/platformerrors"
)

const testIssuer = "https://idp.example.com"

func newTestValidator(t *testing.T) (*Validator, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	cfg := &config.Config{AuthEnabled: true, AuthIssuer: testIssuer, AuthAudience: "companion-api"}
	return &Validator{
		cfg: cfg,
		log: zerolog.Nop(),
		keyfunc: func(*jwt.Token) (any, error) {
			return &key.PublicKey, nil
		},
	}, key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestIdentityFromClaims(t *testing.T) {
	tests := []struct {
		name     string
		claims   jwt.MapClaims
		plans    []string
		features []string
	}{
		{
			name:     "compact comma separated with scope prefixes",
			claims:   jwt.MapClaims{"sub": "user_1", "pla": "u:pro_companion", "fea": "u:3_active_companions,o:10_active_companions"},
			plans:    []string{"pro_companion"},
			features: []string{"3_active_companions", "10_active_companions"},
		},
		{
			name:     "arrays",
			claims:   jwt.MapClaims{"sub": "user_1", "plans": []any{"pro_companion"}, "features": []any{"3_active_companions", 7}},
			plans:    []string{"pro_companion"},
			features: []string{"3_active_companions"},
		},
		{
			name:     "no entitlements",
			claims:   jwt.MapClaims{"sub": "user_1"},
			plans:    []string{},
			features: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := IdentityFromClaims(tt.claims)
			require.NoError(t, err)
			assert.Equal(t, "user_1", id.UserID)
			assert.Equal(t, tt.plans, id.Plans)
			assert.Equal(t, tt.features, id.Features)
		})
	}

	_, err := IdentityFromClaims(jwt.MapClaims{"pla": "pro_companion"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolver_Bearer(t *testing.T) {
	validator, key := newTestValidator(t)
	resolver := NewResolver(validator, nil, zerolog.Nop())

	token := sign(t, key, jwt.MapClaims{
		"sub": "user_1",
		"iss": testIssuer,
		"aud": "companion-api",
		"exp": time.Now().Add(time.Hour).Unix(),
		"fea": "u:3_active_companions",
	})
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	id, err := resolver.Resolve(context.Background(), header)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "user_1", id.UserID)
	assert.Equal(t, []string{"3_active_companions"}, id.Features)

	missing, err := resolver.Resolve(context.Background(), http.Header{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	wrongIssuer := sign(t, key, jwt.MapClaims{
		"sub": "user_1",
		"iss": "https://elsewhere",
		"aud": "companion-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	header.Set("Authorization", "Bearer "+wrongIssuer)
	_, err = resolver.Resolve(context.Background(), header)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := sign(t, key, jwt.MapClaims{
		"sub": "user_1",
		"iss": testIssuer,
		"aud": "companion-api",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	header.Set("Authorization", "Bearer "+expired)
	_, err = resolver.Resolve(context.Background(), header)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolver_DevelopmentHeaders(t *testing.T) {
	validator, err := NewValidator(context.Background(), &config.Config{AuthEnabled: false}, zerolog.Nop())
	require.NoError(t, err)
	resolver := NewResolver(validator, nil, zerolog.Nop())

	header := http.Header{}
	header.Set(HeaderUserID, "dev_user")
	header.Set(HeaderUserPlans, "pro_companion")
	header.Set(HeaderUserFeatures, "3_active_companions, 10_active_companions")

	id, err := resolver.Resolve(context.Background(), header)
	require.NoError(t, err)
	assert.Equal(t, "dev_user", id.UserID)
	assert.Equal(t, []string{"pro_companion"}, id.Plans)
	assert.Equal(t, []string{"3_active_companions", "10_active_companions"}, id.Features)

	anonymous, err := resolver.Resolve(context.Background(), http.Header{})
	require.NoError(t, err)
	assert.Nil(t, anonymous)
}

func newEntitlementsServer(t *testing.T, calls *int32, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/users/user_1/entitlements", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Entitlements{Features: []string{"10_active_companions"}})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEntitlementsClient_CachesLookups(t *testing.T) {
	var calls int32
	server := newEntitlementsServer(t, &calls, http.StatusOK)

	client, err := NewEntitlementsClient(&config.Config{
		EntitlementsURL:       server.URL,
		EntitlementsAPIKey:    "secret",
		EntitlementsCacheSize: 8,
		EntitlementsCacheTTL:  time.Minute,
	}, zerolog.Nop())
	require.NoError(t, err)
	now := time.Now()
	client.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		got, err := client.Lookup(context.Background(), "user_1")
		require.NoError(t, err)
		assert.Equal(t, []string{"10_active_companions"}, got.Features)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	now = now.Add(2 * time.Minute)
	_, err = client.Lookup(context.Background(), "user_1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestResolver_MergesRemoteEntitlements(t *testing.T) {
	var calls int32
	server := newEntitlementsServer(t, &calls, http.StatusOK)
	client, err := NewEntitlementsClient(&config.Config{
		EntitlementsURL:       server.URL,
		EntitlementsAPIKey:    "secret",
		EntitlementsCacheSize: 8,
		EntitlementsCacheTTL:  time.Minute,
	}, zerolog.Nop())
	require.NoError(t, err)

	validator, err := NewValidator(context.Background(), &config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	resolver := NewResolver(validator, client, zerolog.Nop())

	header := http.Header{}
	header.Set(HeaderUserID, "user_1")
	header.Set(HeaderUserFeatures, "3_active_companions")
	id, err := resolver.Resolve(context.Background(), header)
	require.NoError(t, err)
	assert.Equal(t, []string{"3_active_companions", "10_active_companions"}, id.Features)
}

func TestResolver_EntitlementFailureIsExternalError(t *testing.T) {
	var calls int32
	server := newEntitlementsServer(t, &calls, http.StatusBadGateway)
	client, err := NewEntitlementsClient(&config.Config{
		EntitlementsURL:       server.URL,
		EntitlementsAPIKey:    "secret",
		EntitlementsCacheSize: 8,
		EntitlementsCacheTTL:  time.Minute,
	}, zerolog.Nop())
	require.NoError(t, err)

	validator, err := NewValidator(context.Background(), &config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	resolver := NewResolver(validator, client, zerolog.Nop())

	header := http.Header{}
	header.Set(HeaderUserID, "user_1")
	_, err = resolver.Resolve(context.Background(), header)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestNewEntitlementsClient_DisabledWithoutURL(t *testing.T) {
	client, err := NewEntitlementsClient(&config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, client)
}
