package crm

import (
	"context"

	"go.uber.org/zap"

	"restaurant/application/integration"
	"restaurant/pkg/logger"
)

// LoggingProvider only logs the order. Used when no CRM transport is configured.
type LoggingProvider struct{}

var _ integration.CrmProvider = LoggingProvider{}

func (LoggingProvider) Send(ctx context.Context, order integration.CrmOrder) error {
	logger.WithContext(ctx).Info("CRM delivery skipped, no transport configured",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.Int64("total_price", order.TotalPrice),
	)
	return nil
}
