package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/go-playground/validator/v10"
)

type settingsForm struct {
	DefaultCurrency   string `json:"defaultCurrency" validate:"required,supported_currency"`
	DefaultColor      string `json:"defaultColor" validate:"omitempty,hex_color"`
	DefaultFont       string `json:"defaultFont" validate:"max=64"`
	DefaultTemplate   string `json:"defaultTemplate" validate:"required,template_id"`
	InvoicePrefix     string `json:"invoicePrefix" validate:"max=16"`
	NextInvoiceNumber int    `json:"nextInvoiceNumber" validate:"min=1"`
}

// settingsService keeps the user's defaults in their own slot.
type settingsService struct {
	BaseService
	slots    portsrepo.SlotRepositoryFacade
	validate *validator.Validate
	mu       sync.Mutex
}

// NewSettingsService creates a settings service backed by the slot store.
func NewSettingsService(slots portsrepo.SlotRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{slots: slots, validate: newValidator()}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *settingsService) NextInvoiceNumber(ctx context.Context) (string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.NextNumber(), nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	next := current
	if req.DefaultCurrency != nil {
		next.DefaultCurrency = strings.ToUpper(strings.TrimSpace(*req.DefaultCurrency))
	}
	if req.DefaultColor != nil {
		next.DefaultColor = strings.ToLower(strings.TrimSpace(*req.DefaultColor))
	}
	if req.DefaultFont != nil {
		next.DefaultFont = strings.TrimSpace(*req.DefaultFont)
	}
	if req.DefaultTemplate != nil {
		next.DefaultTemplate = domain.TemplateID(strings.ToLower(strings.TrimSpace(*req.DefaultTemplate)))
	}
	if req.InvoicePrefix != nil {
		next.InvoicePrefix = *req.InvoicePrefix
	}
	if req.NextInvoiceNumber != nil {
		next.NextInvoiceNumber = *req.NextInvoiceNumber
	}

	form := settingsForm{
		DefaultCurrency:   next.DefaultCurrency,
		DefaultColor:      next.DefaultColor,
		DefaultFont:       next.DefaultFont,
		DefaultTemplate:   string(next.DefaultTemplate),
		InvoicePrefix:     next.InvoicePrefix,
		NextInvoiceNumber: next.NextInvoiceNumber,
	}
	if err := s.validate.Struct(form); err != nil {
		return domain.Settings{}, toValidationErrors(err)
	}

	if err := s.save(ctx, next); err != nil {
		return domain.Settings{}, err
	}
	s.LogInfo(ctx, "Settings updated", slog.String("next_invoice_number", next.NextNumber()))
	return next, nil
}

func (s *settingsService) IncrementInvoiceNumber(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	current.NextInvoiceNumber++
	if err := s.save(ctx, current); err != nil {
		return domain.Settings{}, err
	}
	return current, nil
}

// load reads the settings slot. Missing or corrupted slots yield defaults; only storage
// failures are errors.
func (s *settingsService) load(ctx context.Context) (domain.Settings, error) {
	raw, err := s.slots.LoadSlot(ctx, portsrepo.SettingsSlotKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings slot")
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			s.LogWarn(ctx, err, "Settings slot is malformed, using defaults")
			return domain.DefaultSettings(), nil
		}
		// well-formed JSON with a mistyped field: keep the fields that did decode
		s.LogWarn(ctx, err, "Settings slot has invalid fields", slog.String("field", typeErr.Field))
	}
	return normalizeSettings(settings), nil
}

func (s *settingsService) save(ctx context.Context, settings domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.slots.SaveSlot(ctx, portsrepo.SettingsSlotKey, raw); err != nil {
		s.LogError(ctx, err, "Failed to save settings slot")
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// normalizeSettings repairs individually invalid fields of stored settings.
func normalizeSettings(s domain.Settings) domain.Settings {
	defaults := domain.DefaultSettings()
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = defaults.DefaultCurrency
	}
	if id, ok := domain.ParseTemplateID(string(s.DefaultTemplate)); ok {
		s.DefaultTemplate = id
	} else {
		s.DefaultTemplate = defaults.DefaultTemplate
	}
	if s.NextInvoiceNumber < 1 {
		s.NextInvoiceNumber = defaults.NextInvoiceNumber
	}
	return s
}
