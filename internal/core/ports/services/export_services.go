package services

import (
	"context"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/export"
	"github.com/SscSPs/invoice_wizard/internal/render"
)

// DocumentSvc renders the current draft. An empty template id means the draft's own template.
type DocumentSvc interface {
	Document(ctx context.Context, templateID domain.TemplateID) (render.Document, error)
	Preview(ctx context.Context, templateID domain.TemplateID) (string, error)
	Templates(ctx context.Context) ([]domain.TemplateID, domain.TemplateID, error)
}

// ExportSvc produces PDFs from the current draft. Only one export runs at a time.
type ExportSvc interface {
	Export(ctx context.Context, templateID domain.TemplateID) (export.Result, error)

	// Email exports the draft and mails the PDF to the draft's email recipient.
	Email(ctx context.Context, templateID domain.TemplateID) (string, export.Result, error)
}

// ExportSvcFacade combines document rendering and export.
type ExportSvcFacade interface {
	DocumentSvc
	ExportSvc
}

// LogoSvc uploads logos and stores the resulting reference on the draft.
type LogoSvc interface {
	// UploadLogo returns the new draft, the stored reference and whether the data-URI fallback was used.
	UploadLogo(ctx context.Context, filename, contentType string, data []byte) (domain.Draft, string, bool, error)
}
