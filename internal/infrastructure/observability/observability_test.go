package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/config"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.Config{EnableTracing: false}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestExporterEndpoint(t *testing.T) {
	tests := []struct {
		raw      string
		endpoint string
		insecure bool
	}{
		{"otel-collector:4318", "otel-collector:4318", true},
		{"http://otel-collector:4318/", "otel-collector:4318", true},
		{"https://collector.example.com", "collector.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			endpoint, insecure := exporterEndpoint(tt.raw)
			assert.Equal(t, tt.endpoint, endpoint)
			assert.Equal(t, tt.insecure, insecure)
		})
	}
}
