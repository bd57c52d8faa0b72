package viewcache

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/infrastructure/metrics"
)

func TestInstrumented_CallerPathsShareOneSeries(t *testing.T) {
	memory, err := NewMemoryCache(8)
	require.NoError(t, err)
	cache := NewInstrumented(memory, "memory", zerolog.Nop())

	seriesBefore := testutil.CollectAndCount(metrics.ViewInvalidationsTotal)
	for i := 0; i < 100; i++ {
		require.NoError(t, cache.Invalidate(context.Background(), fmt.Sprintf("/junk-%d", i)))
	}
	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.ViewInvalidationsTotal), seriesBefore+1)
}
