package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "companion-api", cfg.ServiceName)
	assert.Equal(t, ":8190", cfg.Addr())
	assert.Equal(t, "/sign-in", cfg.SignInPath)
	assert.Equal(t, "memory", cfg.ViewCacheBackend)
	assert.Equal(t, 30*time.Second, cfg.ViewCacheTTL)
	assert.False(t, cfg.BookmarkAtomicWrites)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9001")
	t.Setenv("BOOKMARK_ATOMIC_WRITES", "true")
	t.Setenv("VIEW_CACHE_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Addr())
	assert.True(t, cfg.BookmarkAtomicWrites)
	assert.Equal(t, 2*time.Minute, cfg.ViewCacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "auth without issuer",
			env:     map[string]string{"AUTH_ENABLED": "true", "AUTH_JWKS_URL": "http://idp/jwks"},
			wantErr: "AUTH_ISSUER",
		},
		{
			name:    "auth without jwks",
			env:     map[string]string{"AUTH_ENABLED": "true", "AUTH_ISSUER": "http://idp"},
			wantErr: "AUTH_JWKS_URL",
		},
		{
			name:    "redis backend without url",
			env:     map[string]string{"VIEW_CACHE_BACKEND": "redis"},
			wantErr: "REDIS_URL",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"VIEW_CACHE_BACKEND": "memcached"},
			wantErr: "VIEW_CACHE_BACKEND",
		},
		{
			name:    "relative sign in path",
			env:     map[string]string{"SIGN_IN_PATH": "sign-in"},
			wantErr: "SIGN_IN_PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
