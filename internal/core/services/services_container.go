package services

import (
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/export"
	"github.com/SscSPs/invoice_wizard/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, clients ports.ClientProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first since the draft service seeds new drafts from them
	container.Settings = NewSettingsService(repos.SlotRepo)

	draftOptions := []DraftServiceOption{}
	exportOptions := []ExportServiceOption{
		WithExporter(export.NewPipeline(export.NewCapturer(cfg.ExportCaptureWidth), export.NewPDFPackager())),
	}
	if repos.InvoiceRepo != nil {
		draftOptions = append(draftOptions, WithInvoiceRepository(repos.InvoiceRepo))
		exportOptions = append(exportOptions, WithDownloadTracking(repos.InvoiceRepo))
	}
	if clients.Events != nil {
		draftOptions = append(draftOptions, WithEventPublisher(clients.Events))
		exportOptions = append(exportOptions, WithExportEvents(clients.Events))
	}
	if clients.Mailer != nil {
		exportOptions = append(exportOptions, WithMailer(clients.Mailer))
	}

	container.Draft = NewDraftService(repos.SlotRepo, container.Settings, draftOptions...)
	container.Export = NewExportService(container.Draft, container.Settings, exportOptions...)
	container.Logo = NewLogoService(container.Draft, clients.LogoStore)

	return container
}
