package services

import (
	"context"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/dto"
)

// SettingsReaderSvc defines read operations for user settings.
type SettingsReaderSvc interface {
	// Get returns the stored settings, or the defaults when none are stored.
	Get(ctx context.Context) (domain.Settings, error)

	// NextInvoiceNumber formats the number the next fresh draft receives.
	NextInvoiceNumber(ctx context.Context) (string, error)
}

// SettingsWriterSvc defines write operations for user settings.
type SettingsWriterSvc interface {
	// Update validates and applies a partial settings change.
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (domain.Settings, error)

	// IncrementInvoiceNumber advances the counter. Only successful submissions call it.
	IncrementInvoiceNumber(ctx context.Context) (domain.Settings, error)
}

// SettingsSvcFacade combines all settings-related service interfaces.
type SettingsSvcFacade interface {
	SettingsReaderSvc
	SettingsWriterSvc
}
