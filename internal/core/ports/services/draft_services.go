package services

import (
	"context"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/utils/accounting"
)

// DraftReaderSvc defines read operations on the in-progress draft.
type DraftReaderSvc interface {
	// Current returns the draft, loading it from the slot store on first use.
	Current(ctx context.Context) (domain.Draft, error)

	// Totals derives the totals of the current draft.
	Totals(ctx context.Context) (accounting.Totals, error)

	// Validate runs submission validation. It returns apperrors.ValidationErrors on failure.
	Validate(ctx context.Context) error
}

// DraftWriterSvc defines the wizard's mutations. Every call persists the new draft before
// returning it.
type DraftWriterSvc interface {
	UpdateCompany(ctx context.Context, company domain.CompanyInfo) (domain.Draft, error)
	UpdateClient(ctx context.Context, client domain.ClientInfo) (domain.Draft, error)
	UpdateMeta(ctx context.Context, meta domain.InvoiceMeta) (domain.Draft, error)
	UpdateAdjustments(ctx context.Context, req dto.UpdateAdjustmentsRequest) (domain.Draft, error)
	UpdatePayment(ctx context.Context, payment domain.PaymentInfo) (domain.Draft, error)
	UpdateDesign(ctx context.Context, design domain.Design) (domain.Draft, error)
	UpdateEmail(ctx context.Context, email domain.EmailFields) (domain.Draft, error)
	SetLogo(ctx context.Context, logo string) (domain.Draft, error)

	// AddLineItem appends a blank line item and returns it together with the new draft.
	AddLineItem(ctx context.Context) (domain.Draft, domain.LineItem, error)

	// RemoveLineItem removes an item. Unknown ids leave the draft unchanged.
	RemoveLineItem(ctx context.Context, itemID string) (domain.Draft, error)

	// UpdateLineItem merges a patch into an item. Unknown ids return apperrors.ErrNotFound.
	UpdateLineItem(ctx context.Context, itemID string, patch domain.LineItemPatch) (domain.Draft, error)

	// Reset discards the draft and starts a fresh one.
	Reset(ctx context.Context) (domain.Draft, error)

	// LoadInvoice replaces the draft with a persisted invoice opened for editing.
	LoadInvoice(ctx context.Context, invoiceID string) (domain.Draft, error)

	// Submit validates and sends the draft to the backend; on success the draft is reset.
	Submit(ctx context.Context) (*domain.Invoice, domain.Draft, error)
}

// DraftSvcFacade combines all draft-related service interfaces.
type DraftSvcFacade interface {
	DraftReaderSvc
	DraftWriterSvc
}
