/*
Package crm delivers paid orders to the customer relationship system.
*/
package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"restaurant/application/integration"
	"restaurant/config"
	"restaurant/pkg/logger"
)

// MessageWriter is the part of kafka.Writer the provider needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProvider publishes each paid order as one JSON message keyed by order id.
// The trace context travels in the message headers.
type KafkaProvider struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
	tracer       trace.Tracer
}

var _ integration.CrmProvider = (*KafkaProvider)(nil)

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

func NewKafkaProvider(writer MessageWriter, cfg config.KafkaConfig) *KafkaProvider {
	return &KafkaProvider{
		writer:       writer,
		topic:        cfg.Topic,
		writeTimeout: cfg.WriteTimeout,
		tracer:       otel.Tracer("restaurant/infrastructure/crm"),
	}
}

func (p *KafkaProvider) Send(ctx context.Context, order integration.CrmOrder) error {
	ctx, span := p.tracer.Start(ctx, "crm.send", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination.name", p.topic),
		attribute.String("order.id", order.ID),
	)

	payload, err := json.Marshal(order)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to encode crm order: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := make([]kafka.Header, 0, len(carrier))
	for key, value := range carrier {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	if p.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.writeTimeout)
		defer cancel()
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(order.ID),
		Value:   payload,
		Headers: headers,
	})
	if err != nil {
		span.RecordError(err)
		logger.WithContext(ctx).Error("Failed to send order to CRM",
			zap.String("order_id", order.ID),
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send order %s to crm: %w", order.ID, err)
	}

	logger.WithContext(ctx).Info("Order sent to CRM",
		zap.String("order_id", order.ID),
		zap.Int64("total_price", order.TotalPrice),
	)
	return nil
}

func (p *KafkaProvider) Close() error {
	return p.writer.Close()
}
