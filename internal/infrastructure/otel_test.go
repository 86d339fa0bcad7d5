package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOTelConfig(t *testing.T) {
	cfg := DefaultOTelConfig()

	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.Equal(t, "prometheus", cfg.MetricExporter)
	assert.InDelta(t, 1.0, cfg.SampleRatio, 1e-9)
}

func TestInitializeOTel(t *testing.T) {
	cfg := &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    "test",
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		SampleRatio:    1.0,
	}

	providers, err := InitializeOTel(cfg, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.PrometheusHTTP)
	assert.Nil(t, providers.TracerProvider)

	metrics, err := CreateDashboardMetrics(providers.Meter)
	require.NoError(t, err)
	assert.NotNil(t, metrics.RequestsTotal)
	assert.NotNil(t, metrics.ComputeDuration)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTelRejectsUnknownExporters(t *testing.T) {
	tests := []struct {
		name string
		cfg  *OTelConfig
	}{
		{
			name: "unknown trace exporter",
			cfg:  &OTelConfig{TraceExporter: "jaeger", MetricExporter: "none"},
		},
		{
			name: "unknown metric exporter",
			cfg:  &OTelConfig{TraceExporter: "none", MetricExporter: "statsd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitializeOTel(tt.cfg, slog.Default())
			assert.Error(t, err)
		})
	}
}
