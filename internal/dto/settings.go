package dto

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// UpdateSettingsRequest defines the settings a user may change. Nil fields are left untouched.
type UpdateSettingsRequest struct {
	DefaultCurrency   *string `json:"defaultCurrency" binding:"omitempty,len=3"`
	DefaultColor      *string `json:"defaultColor"`
	DefaultFont       *string `json:"defaultFont"`
	DefaultTemplate   *string `json:"defaultTemplate"`
	InvoicePrefix     *string `json:"invoicePrefix" binding:"omitempty,max=16"`
	NextInvoiceNumber *int    `json:"nextInvoiceNumber" binding:"omitempty,min=1"`
}

// SettingsResponse is the settings plus the number the next fresh draft will receive.
type SettingsResponse struct {
	domain.Settings
	NextInvoiceNumberFormatted string `json:"nextInvoiceNumberFormatted"`
}

// ToSettingsResponse converts settings to SettingsResponse.
func ToSettingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{Settings: s, NextInvoiceNumberFormatted: s.NextNumber()}
}
