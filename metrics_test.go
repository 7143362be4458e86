package s3os

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinHowarth/s3os/core"
)

func TestDictMetrics(t *testing.T) {
	ctx := context.Background()
	api, store := newTestAPI(t)
	reg := prometheus.NewRegistry()

	d, err := NewDict(ctx, api, nil, WithID("s3os_test"), WithMetrics(reg))
	require.NoError(t, err)

	require.NoError(t, d.Set(ctx, "k", 1))
	_, err = d.Get(ctx, "k") // hit
	require.NoError(t, err)
	_, err = d.Get(ctx, "missing") // miss, then remote NotFound
	require.ErrorIs(t, err, core.ErrNotExist)

	assert.Equal(t, float64(1), testutil.ToFloat64(d.metrics.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.metrics.cacheMisses))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.metrics.remoteOps.WithLabelValues("store")))

	require.NoError(t, d.Delete(ctx, "k"))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.metrics.remoteOps.WithLabelValues("delete")))
	assert.Equal(t, 1, store.Counts.Delete)
}

func TestDictMetricsDisabled(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI(t)

	d, err := NewDict(ctx, api, nil, WithID("s3os_test"))
	require.NoError(t, err)
	assert.Nil(t, d.metrics)

	// Nil metrics record nothing and never panic.
	require.NoError(t, d.Set(ctx, "k", 1))
	_, err = d.Get(ctx, "k")
	require.NoError(t, err)
}

func TestDictMetricsDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI(t)
	reg := prometheus.NewRegistry()

	_, err := NewDict(ctx, api, nil, WithID("s3os_test"), WithMetrics(reg))
	require.NoError(t, err)

	// Same ID means identical metric descriptors; the registry rejects
	// the second dict.
	_, err = NewDict(ctx, api, nil, WithID("s3os_test"), WithMetrics(reg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register dict metrics")
}
