package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"restaurant/config"
)

func TestSetupTracingDisabledInstallsPropagatorOnly(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), config.AppConfig{Name: "restaurant"}, config.TracingConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestSetupTracingRejectsUnknownExporter(t *testing.T) {
	_, err := SetupTracing(context.Background(), config.AppConfig{Name: "restaurant"},
		config.TracingConfig{Enabled: true, Exporter: "zipkin"})
	assert.Error(t, err)
}
