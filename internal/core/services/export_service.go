package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/export"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/SscSPs/invoice_wizard/internal/utils/accounting"
)

// DocumentExporter turns a rendered document into a PDF.
type DocumentExporter interface {
	Run(ctx context.Context, doc render.Document) (export.Result, error)
}

type exportService struct {
	BaseService
	drafts    portssvc.DraftReaderSvc
	settings  portssvc.SettingsReaderSvc
	templates *render.Registry
	html      *render.HTMLEncoder
	exporter  DocumentExporter
	invoices  portsrepo.InvoiceRepositoryFacade
	mailer    ports.Mailer
	events    ports.EventPublisher
	now       func() time.Time

	inProgress atomic.Bool
}

// ExportServiceOption is a functional option for configuring the export service
type ExportServiceOption func(*exportService)

// WithExporter replaces the default capture and packaging pipeline.
func WithExporter(exporter DocumentExporter) ExportServiceOption {
	return func(s *exportService) {
		s.exporter = exporter
	}
}

// WithTemplateRegistry replaces the built-in template set.
func WithTemplateRegistry(registry *render.Registry) ExportServiceOption {
	return func(s *exportService) {
		s.templates = registry
	}
}

// WithDownloadTracking records downloads of invoices opened for editing.
func WithDownloadTracking(repo portsrepo.InvoiceRepositoryFacade) ExportServiceOption {
	return func(s *exportService) {
		s.invoices = repo
	}
}

// WithMailer enables emailing exported invoices.
func WithMailer(mailer ports.Mailer) ExportServiceOption {
	return func(s *exportService) {
		s.mailer = mailer
	}
}

// WithExportEvents publishes export and email events.
func WithExportEvents(publisher ports.EventPublisher) ExportServiceOption {
	return func(s *exportService) {
		s.events = publisher
	}
}

// NewExportService creates the document and export service.
func NewExportService(drafts portssvc.DraftReaderSvc, settings portssvc.SettingsReaderSvc, options ...ExportServiceOption) portssvc.ExportSvcFacade {
	svc := &exportService{
		drafts:    drafts,
		settings:  settings,
		templates: render.NewRegistry(),
		html:      render.NewHTMLEncoder(),
		exporter:  export.NewPipeline(export.NewCapturer(export.DefaultCaptureWidth), export.NewPDFPackager()),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

func (s *exportService) Document(ctx context.Context, templateID domain.TemplateID) (render.Document, error) {
	doc, _, err := s.document(ctx, templateID)
	return doc, err
}

func (s *exportService) Preview(ctx context.Context, templateID domain.TemplateID) (string, error) {
	doc, _, err := s.document(ctx, templateID)
	if err != nil {
		return "", err
	}
	page, err := s.html.Encode(doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to encode preview", slog.String("template", string(doc.Template)))
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}
	return page, nil
}

func (s *exportService) Templates(ctx context.Context) ([]domain.TemplateID, domain.TemplateID, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	return s.templates.IDs(), settings.DefaultTemplate, nil
}

// Export renders and packages the current draft. A second call while one is running fails
// fast with ErrExportInProgress.
func (s *exportService) Export(ctx context.Context, templateID domain.TemplateID) (export.Result, error) {
	if !s.inProgress.CompareAndSwap(false, true) {
		return export.Result{}, apperrors.ErrExportInProgress
	}
	defer s.inProgress.Store(false)

	result, d, err := s.run(ctx, templateID)
	if err != nil {
		return export.Result{}, err
	}

	if d.IsEditing() && s.invoices != nil {
		if err := s.invoices.RecordDownload(ctx, d.EditingInvoiceID); err != nil {
			s.LogWarn(ctx, err, "Failed to record invoice download", slog.String("invoice_id", d.EditingInvoiceID))
		}
	}
	s.publish(ctx, domain.EventInvoiceExported, d)
	return result, nil
}

func (s *exportService) Email(ctx context.Context, templateID domain.TemplateID) (string, export.Result, error) {
	if s.mailer == nil {
		return "", export.Result{}, fmt.Errorf("mailer: %w", apperrors.ErrNotConfigured)
	}
	if !s.inProgress.CompareAndSwap(false, true) {
		return "", export.Result{}, apperrors.ErrExportInProgress
	}
	defer s.inProgress.Store(false)

	d, err := s.drafts.Current(ctx)
	if err != nil {
		return "", export.Result{}, err
	}
	recipient := strings.TrimSpace(d.Email.Recipient)
	if recipient == "" {
		recipient = strings.TrimSpace(d.Client.Email)
	}
	if recipient == "" {
		return "", export.Result{}, apperrors.ValidationErrors{{Field: "email.recipient", Message: "is required"}}
	}

	result, d, err := s.run(ctx, templateID)
	if err != nil {
		return "", export.Result{}, err
	}

	subject := strings.TrimSpace(d.Email.Subject)
	if subject == "" {
		subject = "Invoice " + d.Meta.InvoiceNumber
	}
	mail := ports.Mail{
		To:      recipient,
		Subject: subject,
		Body:    d.Email.Body,
		Attachments: []ports.Attachment{
			{Filename: result.Filename, ContentType: "application/pdf", Data: result.PDF},
		},
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		s.LogError(ctx, err, "Failed to email invoice", slog.String("invoice_number", d.Meta.InvoiceNumber))
		return "", export.Result{}, fmt.Errorf("failed to email invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice emailed", slog.String("invoice_number", d.Meta.InvoiceNumber), slog.Int("pages", result.Pages))
	s.publish(ctx, domain.EventInvoiceEmailed, d)
	return recipient, result, nil
}

func (s *exportService) run(ctx context.Context, templateID domain.TemplateID) (export.Result, domain.Draft, error) {
	doc, d, err := s.document(ctx, templateID)
	if err != nil {
		return export.Result{}, domain.Draft{}, err
	}

	start := s.now()
	result, err := s.exporter.Run(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Invoice export failed",
			slog.String("invoice_number", d.Meta.InvoiceNumber),
			slog.String("template", string(doc.Template)))
		return export.Result{}, domain.Draft{}, fmt.Errorf("%w: %w", apperrors.ErrExportFailed, err)
	}
	s.LogInfo(ctx, "Invoice exported",
		slog.String("invoice_number", d.Meta.InvoiceNumber),
		slog.String("template", string(doc.Template)),
		slog.Int("pages", result.Pages),
		slog.Duration("took", s.now().Sub(start)))
	return result, d, nil
}

func (s *exportService) document(ctx context.Context, templateID domain.TemplateID) (render.Document, domain.Draft, error) {
	d, err := s.drafts.Current(ctx)
	if err != nil {
		return render.Document{}, domain.Draft{}, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return render.Document{}, domain.Draft{}, err
	}
	if templateID == "" {
		templateID = d.Design.TemplateID
	}

	doc, err := s.templates.Render(templateID, render.BuildInvoiceData(d, settings))
	if err != nil {
		return render.Document{}, domain.Draft{}, err
	}
	return doc, d, nil
}

func (s *exportService) publish(ctx context.Context, eventType domain.InvoiceEventType, d domain.Draft) {
	if s.events == nil {
		return
	}
	event := domain.InvoiceEvent{
		Type:          eventType,
		InvoiceID:     d.EditingInvoiceID,
		InvoiceNumber: d.Meta.InvoiceNumber,
		Template:      d.Design.TemplateID,
		Currency:      d.Currency,
		Total:         accounting.DraftTotals(d).Total,
		OccurredAt:    s.now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.LogWarn(ctx, err, "Failed to publish invoice event", slog.String("type", string(eventType)))
	}
}
