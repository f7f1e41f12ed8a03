package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
)

// LogPublisher records events in the request log. Used when no broker is configured.
type LogPublisher struct{}

var _ ports.EventPublisher = LogPublisher{}

func (LogPublisher) Publish(ctx context.Context, event domain.InvoiceEvent) error {
	middleware.GetLoggerFromCtx(ctx).Info("Invoice event",
		slog.String("type", string(event.Type)),
		slog.String("invoiceNumber", event.InvoiceNumber),
		slog.String("invoiceId", event.InvoiceID),
		slog.String("total", event.Total.StringFixed(2)),
		slog.String("currency", event.Currency))
	return nil
}
