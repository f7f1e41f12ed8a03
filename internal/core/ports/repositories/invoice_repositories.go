package repositories

import (
	"context"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/dto"
)

// InvoiceReader defines read operations against the backend of record.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a persisted invoice. Returns apperrors.ErrNotFound if absent.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations against the backend of record.
type InvoiceWriter interface {
	// CreateInvoice submits a new invoice.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoice replaces an existing invoice.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// RecordDownload increments the download counter of a persisted invoice.
	RecordDownload(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
