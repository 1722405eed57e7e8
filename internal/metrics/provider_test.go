package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	for _, namespace := range []string{"tokenshare_test", ""} {
		provider, err := NewProvider(namespace)
		require.NoError(t, err)
		require.NotNil(t, provider.MeterProvider())
		assert.NoError(t, provider.Shutdown(context.Background()))
	}
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("tokenshare_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	counter, err := provider.MeterProvider().Meter("tokenshare_test").Int64Counter("tokenshare_test_ticks_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 4)

	output := scrape(t, provider)
	assert.Contains(t, output, "target_info")
	assert.Contains(t, output, `service_name="tokenshare_test"`)
	assertMetricLine(t, output, `tokenshare_test_ticks_total`, ``, `4`)
}

func TestProvider_Registries_AreIsolated(t *testing.T) {
	first, err := NewProvider("first")
	require.NoError(t, err)
	second, err := NewProvider("second")
	require.NoError(t, err)

	counter, err := first.MeterProvider().Meter("first").Int64Counter("first_only_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	assert.Contains(t, scrape(t, first), "first_only_total")
	assert.NotContains(t, scrape(t, second), "first_only_total")
}

func TestProvider_Shutdown(t *testing.T) {
	provider := &Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}
