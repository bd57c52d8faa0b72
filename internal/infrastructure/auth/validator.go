package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/janhq/companion-api/internal/config"
)

// ErrInvalidToken is returned for bearer tokens that fail signature or claim validation.
var ErrInvalidToken = errors.New("invalid token")

// Validator validates JWTs using JWKS.
type Validator struct {
	cfg     *config.Config
	log     zerolog.Logger
	jwks    *keyfunc.JWKS
	keyfunc jwt.Keyfunc
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	if !cfg.AuthEnabled {
		return &Validator{cfg: cfg, log: log}, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}

	return &Validator{
		cfg:     cfg,
		log:     log,
		jwks:    jwks,
		keyfunc: jwks.Keyfunc,
	}, nil
}

// Enabled reports whether bearer tokens are checked.
func (v *Validator) Enabled() bool {
	return v != nil && v.cfg.AuthEnabled
}

// Parse validates tokenString and returns its claims.
func (v *Validator) Parse(tokenString string) (jwt.MapClaims, error) {
	if v.keyfunc == nil {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(v.cfg.AuthIssuer),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
	}
	if v.cfg.AuthAudience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.AuthAudience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Close stops the background JWKS refresh.
func (v *Validator) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
