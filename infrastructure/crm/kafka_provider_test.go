package crm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"restaurant/application/integration"
	"restaurant/config"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func paidOrder() integration.CrmOrder {
	return integration.CrmOrder{
		ID:         "order-1",
		CustomerID: "customer-1",
		Street:     "Main street",
		Building:   7,
		Items:      []integration.CrmOrderItem{{MealID: "meal-1", Price: 250, Count: 2}},
		TotalPrice: 500,
		State:      "PAID",
	}
}

func TestKafkaProviderWritesKeyedMessageWithTraceHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	writer := &recordingWriter{}
	provider := NewKafkaProvider(writer, config.KafkaConfig{Topic: "crm.orders"})

	require.NoError(t, provider.Send(context.Background(), paidOrder()))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "order-1", string(msg.Key))

	var decoded integration.CrmOrder
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(500), decoded.TotalPrice)
	assert.Equal(t, "meal-1", decoded.Items[0].MealID)

	var traceparent bool
	for _, h := range msg.Headers {
		if h.Key == "traceparent" {
			traceparent = true
		}
	}
	assert.True(t, traceparent)
}

func TestKafkaProviderReturnsWriteFailure(t *testing.T) {
	boom := errors.New("broker unavailable")
	provider := NewKafkaProvider(&recordingWriter{err: boom}, config.KafkaConfig{Topic: "crm.orders"})

	err := provider.Send(context.Background(), paidOrder())
	assert.ErrorIs(t, err, boom)
}

func TestLoggingProviderAcceptsEverything(t *testing.T) {
	assert.NoError(t, LoggingProvider{}.Send(context.Background(), paidOrder()))
}
