package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/SscSPs/invoice_wizard/internal/utils/accounting"
	"github.com/SscSPs/invoice_wizard/internal/utils/mapping"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxTaxRate = decimal.NewFromInt(100)

// errUnchanged tells mutate that nothing changed and nothing needs persisting.
var errUnchanged = errors.New("draft unchanged")

type submissionItem struct {
	Description string `json:"description" validate:"required"`
}

type submissionForm struct {
	Company struct {
		Email string `json:"email" validate:"omitempty,email"`
	} `json:"company"`
	Client struct {
		Email string `json:"email" validate:"required,email"`
	} `json:"client"`
	Meta struct {
		InvoiceNumber string `json:"invoiceNumber" validate:"required"`
	} `json:"meta"`
	LineItems []submissionItem `json:"lineItems" validate:"min=1,dive"`
}

// draftService is the owning controller of the in-progress draft. All mutations are serialized
// by mu and each one is persisted before the new state becomes visible.
type draftService struct {
	BaseService
	slots    portsrepo.SlotRepositoryFacade
	settings portssvc.SettingsSvcFacade
	invoices portsrepo.InvoiceRepositoryFacade
	events   ports.EventPublisher
	validate *validator.Validate
	now      func() time.Time
	newID    func() string

	mu    sync.Mutex
	draft *domain.Draft
}

// DraftServiceOption is a functional option for configuring the draft service
type DraftServiceOption func(*draftService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) DraftServiceOption {
	return func(s *draftService) {
		s.now = now
	}
}

// WithIDGenerator replaces the line item id generator.
func WithIDGenerator(newID func() string) DraftServiceOption {
	return func(s *draftService) {
		s.newID = newID
	}
}

// WithInvoiceRepository adds the backend of record used by Submit and LoadInvoice.
func WithInvoiceRepository(repo portsrepo.InvoiceRepositoryFacade) DraftServiceOption {
	return func(s *draftService) {
		s.invoices = repo
	}
}

// WithEventPublisher adds lifecycle event publishing.
func WithEventPublisher(publisher ports.EventPublisher) DraftServiceOption {
	return func(s *draftService) {
		s.events = publisher
	}
}

// NewDraftService creates a draft service with the provided options
func NewDraftService(slots portsrepo.SlotRepositoryFacade, settings portssvc.SettingsSvcFacade, options ...DraftServiceOption) portssvc.DraftSvcFacade {
	svc := &draftService{
		slots:    slots,
		settings: settings,
		validate: newValidator(),
		now:      time.Now,
		newID:    uuid.NewString,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure draftService implements the DraftSvcFacade interface
var _ portssvc.DraftSvcFacade = (*draftService)(nil)

func (s *draftService) Current(ctx context.Context) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.currentLocked(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	return d.Clone(), nil
}

func (s *draftService) Totals(ctx context.Context) (accounting.Totals, error) {
	d, err := s.Current(ctx)
	if err != nil {
		return accounting.Totals{}, err
	}
	return accounting.DraftTotals(d), nil
}

func (s *draftService) Validate(ctx context.Context) error {
	d, err := s.Current(ctx)
	if err != nil {
		return err
	}
	return s.validateDraft(d)
}

func (s *draftService) UpdateCompany(ctx context.Context, company domain.CompanyInfo) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		if company.Logo == "" {
			company.Logo = d.Company.Logo
		}
		if company.PhoneCode == "" {
			company.PhoneCode = utils.DialCodeForCountry(company.Country)
		}
		d.Company = company
		return nil
	})
}

func (s *draftService) UpdateClient(ctx context.Context, client domain.ClientInfo) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		d.Client = client
		return nil
	})
}

func (s *draftService) UpdateMeta(ctx context.Context, meta domain.InvoiceMeta) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		d.Meta = meta
		return nil
	})
}

func (s *draftService) UpdateAdjustments(ctx context.Context, req dto.UpdateAdjustmentsRequest) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		var verrs apperrors.ValidationErrors
		if req.Discount != nil {
			discount := req.Discount.Decimal()
			if discount.IsNegative() {
				verrs = append(verrs, apperrors.FieldError{Field: "discount", Message: "must be zero or more"})
			}
			d.Discount = discount
		}
		if req.TaxRate != nil {
			rate := req.TaxRate.Decimal()
			if rate.IsNegative() || rate.GreaterThan(maxTaxRate) {
				verrs = append(verrs, apperrors.FieldError{Field: "taxRate", Message: "must be between 0 and 100"})
			}
			d.TaxRate = rate
		}
		if len(verrs) > 0 {
			return verrs
		}
		if req.Currency != nil {
			d.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
		}
		if req.Notes != nil {
			d.Notes = *req.Notes
		}
		return nil
	})
}

func (s *draftService) UpdatePayment(ctx context.Context, payment domain.PaymentInfo) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		d.Payment = payment.Normalize()
		return nil
	})
}

func (s *draftService) UpdateDesign(ctx context.Context, design domain.Design) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		color := strings.TrimSpace(design.PrimaryColor)
		if color != "" && !render.IsHexColor(color) {
			return apperrors.ValidationErrors{{Field: "design.primaryColor", Message: "must be a #RRGGBB color or empty"}}
		}
		design.PrimaryColor = strings.ToLower(color)

		if design.TemplateID == "" {
			design.TemplateID = d.Design.TemplateID
		}
		id, ok := domain.ParseTemplateID(string(design.TemplateID))
		if !ok {
			return fmt.Errorf("%w: %q", apperrors.ErrUnknownTemplate, design.TemplateID)
		}
		design.TemplateID = id
		d.Design = design
		return nil
	})
}

func (s *draftService) UpdateEmail(ctx context.Context, email domain.EmailFields) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		d.Email = email
		return nil
	})
}

func (s *draftService) SetLogo(ctx context.Context, logo string) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		d.Company.Logo = strings.TrimSpace(logo)
		return nil
	})
}

func (s *draftService) AddLineItem(ctx context.Context) (domain.Draft, domain.LineItem, error) {
	var added domain.LineItem
	d, err := s.mutate(ctx, func(d *domain.Draft) error {
		d.LineItems, added = d.LineItems.Add(s.newID())
		return nil
	})
	if err != nil {
		return domain.Draft{}, domain.LineItem{}, err
	}
	return d, added, nil
}

func (s *draftService) RemoveLineItem(ctx context.Context, itemID string) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		next, removed := d.LineItems.Remove(itemID)
		if !removed {
			return errUnchanged
		}
		d.LineItems = next
		return nil
	})
}

func (s *draftService) UpdateLineItem(ctx context.Context, itemID string, patch domain.LineItemPatch) (domain.Draft, error) {
	return s.mutate(ctx, func(d *domain.Draft) error {
		next, ok := d.LineItems.Update(itemID, patch)
		if !ok {
			return fmt.Errorf("line item %q: %w", itemID, apperrors.ErrNotFound)
		}
		d.LineItems = next
		return nil
	})
}

func (s *draftService) Reset(ctx context.Context) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.freshDraft(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	if err := s.commitLocked(ctx, fresh); err != nil {
		return domain.Draft{}, err
	}
	s.LogInfo(ctx, "Draft reset", slog.String("invoice_number", fresh.Meta.InvoiceNumber))
	return fresh.Clone(), nil
}

func (s *draftService) LoadInvoice(ctx context.Context, invoiceID string) (domain.Draft, error) {
	if s.invoices == nil {
		return domain.Draft{}, fmt.Errorf("invoice backend: %w", apperrors.ErrNotConfigured)
	}

	inv, err := s.invoices.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoice for editing", slog.String("invoice_id", invoiceID))
		return domain.Draft{}, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Draft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := mapping.ToDraft(*inv, settings, s.now())
	if err := s.commitLocked(ctx, d); err != nil {
		return domain.Draft{}, err
	}
	s.LogInfo(ctx, "Invoice loaded for editing", slog.String("invoice_id", inv.ID))
	return d.Clone(), nil
}

// Submit holds the lock for the whole round trip so no edit can slip in between the backend
// accepting the draft and the draft being reset.
func (s *draftService) Submit(ctx context.Context) (*domain.Invoice, domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.currentLocked(ctx)
	if err != nil {
		return nil, domain.Draft{}, err
	}
	if err := s.validateDraft(d); err != nil {
		return nil, d.Clone(), err
	}
	if s.invoices == nil {
		return nil, d.Clone(), fmt.Errorf("%w: invoice backend %w", apperrors.ErrSubmissionFailed, apperrors.ErrNotConfigured)
	}

	req := mapping.ToCreateInvoiceRequest(d)
	var inv *domain.Invoice
	if d.IsEditing() {
		inv, err = s.invoices.UpdateInvoice(ctx, d.EditingInvoiceID, req)
	} else {
		inv, err = s.invoices.CreateInvoice(ctx, req)
	}
	if err != nil {
		s.LogError(ctx, err, "Invoice submission failed",
			slog.String("invoice_number", d.Meta.InvoiceNumber),
			slog.Bool("editing", d.IsEditing()))
		return nil, d.Clone(), fmt.Errorf("%w: %w", apperrors.ErrSubmissionFailed, err)
	}

	if !d.IsEditing() {
		if _, err := s.settings.IncrementInvoiceNumber(ctx); err != nil {
			s.LogWarn(ctx, err, "Failed to advance invoice counter after submission")
		}
	}
	s.publish(ctx, domain.InvoiceEvent{
		Type:          domain.EventInvoiceSubmitted,
		InvoiceID:     inv.ID,
		InvoiceNumber: d.Meta.InvoiceNumber,
		Template:      d.Design.TemplateID,
		Currency:      d.Currency,
		Total:         accounting.DraftTotals(d).Total,
		OccurredAt:    s.now(),
	})

	fresh, err := s.freshDraft(ctx)
	if err != nil {
		// the invoice exists; only the local reset failed
		return inv, d.Clone(), nil
	}
	if err := s.commitLocked(ctx, fresh); err != nil {
		s.LogWarn(ctx, err, "Failed to reset draft after submission")
		return inv, d.Clone(), nil
	}
	s.LogInfo(ctx, "Invoice submitted", slog.String("invoice_id", inv.ID), slog.String("invoice_number", d.Meta.InvoiceNumber))
	return inv, fresh.Clone(), nil
}

// mutate applies fn to a copy of the current draft, stamps lastSaved and persists it. The
// copy only replaces the current draft once persisting succeeded.
func (s *draftService) mutate(ctx context.Context, fn func(d *domain.Draft) error) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentLocked(ctx)
	if err != nil {
		return domain.Draft{}, err
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		if errors.Is(err, errUnchanged) {
			return current.Clone(), nil
		}
		return domain.Draft{}, err
	}
	next.LastSaved = s.now()

	if err := s.commitLocked(ctx, next); err != nil {
		return domain.Draft{}, err
	}
	return next.Clone(), nil
}

func (s *draftService) currentLocked(ctx context.Context) (domain.Draft, error) {
	if s.draft != nil {
		return *s.draft, nil
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	fresh := domain.NewDraft(settings, s.now())

	raw, err := s.slots.LoadSlot(ctx, portsrepo.DraftSlotKey)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.draft = &fresh
		return fresh, nil
	case err != nil:
		s.LogError(ctx, err, "Failed to load draft slot")
		return domain.Draft{}, fmt.Errorf("failed to load draft: %w", err)
	}

	d, bad := decodeDraft(raw, fresh, settings, s.newID)
	if len(bad) > 0 {
		s.LogWarn(ctx, nil, "Stored draft had unreadable fields, defaults used", slog.Any("fields", bad))
	}
	s.draft = &d
	return d, nil
}

func (s *draftService) commitLocked(ctx context.Context, d domain.Draft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.slots.SaveSlot(ctx, portsrepo.DraftSlotKey, raw); err != nil {
		s.LogError(ctx, err, "Failed to persist draft")
		return fmt.Errorf("failed to save draft: %w", err)
	}
	stored := d.Clone()
	s.draft = &stored
	return nil
}

func (s *draftService) freshDraft(ctx context.Context) (domain.Draft, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.NewDraft(settings, s.now()), nil
}

// validateDraft checks what the backend requires before anything is sent.
func (s *draftService) validateDraft(d domain.Draft) error {
	var form submissionForm
	form.Company.Email = strings.TrimSpace(d.Company.Email)
	form.Client.Email = strings.TrimSpace(d.Client.Email)
	form.Meta.InvoiceNumber = strings.TrimSpace(d.Meta.InvoiceNumber)
	form.LineItems = make([]submissionItem, len(d.LineItems))
	for i, item := range d.LineItems {
		form.LineItems[i].Description = strings.TrimSpace(item.Description)
	}

	var errs apperrors.ValidationErrors
	if err := s.validate.Struct(form); err != nil {
		converted := toValidationErrors(err)
		var verrs apperrors.ValidationErrors
		if !errors.As(converted, &verrs) {
			return converted
		}
		errs = append(errs, verrs...)
	}
	if !d.Meta.IssueDate.IsZero() && !d.Meta.DueDate.IsZero() && d.Meta.DueDate.Before(d.Meta.IssueDate) {
		errs = append(errs, apperrors.FieldError{Field: "meta.dueDate", Message: "must not be before the issue date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *draftService) publish(ctx context.Context, event domain.InvoiceEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.LogWarn(ctx, err, "Failed to publish invoice event", slog.String("type", string(event.Type)))
	}
}
