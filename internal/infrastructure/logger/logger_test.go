package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/config"
)

func TestNewWithWriter_JSONCarriesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{
		ServiceName: "companion-api",
		Environment: "test",
		LogLevel:    "debug",
		LogFormat:   "json",
	}, &buf)

	log.Debug().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "companion-api", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "hello", entry["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
}
