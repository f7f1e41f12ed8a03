package dto

import (
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/utils/accounting"
)

// UpdateAdjustmentsRequest carries the adjustment step of the wizard. Nil fields are left untouched.
type UpdateAdjustmentsRequest struct {
	TaxRate  *domain.NumberInput `json:"taxRate" swaggertype:"string" example:"10"`
	Discount *domain.NumberInput `json:"discount" swaggertype:"string" example:"50"`
	Currency *string             `json:"currency" example:"GHS"`
	Notes    *string             `json:"notes"`
}

// SetLogoRequest sets the logo reference directly, e.g. an already hosted URL.
type SetLogoRequest struct {
	Logo string `json:"logo"`
}

// DraftResponse is the draft together with its derived totals.
type DraftResponse struct {
	Draft  domain.Draft      `json:"draft"`
	Totals accounting.Totals `json:"totals"`
}

// ToDraftResponse pairs a draft with freshly computed totals.
func ToDraftResponse(d domain.Draft) DraftResponse {
	return DraftResponse{Draft: d, Totals: accounting.DraftTotals(d)}
}

// LineItemResponse is returned when a line item is added.
type LineItemResponse struct {
	Item  domain.LineItem `json:"item"`
	Draft DraftResponse   `json:"draft"`
}

// LogoResponse reports where the uploaded logo ended up.
type LogoResponse struct {
	Logo     string        `json:"logo"`
	Fallback bool          `json:"fallback"` // true when the remote upload failed and a data URI was stored
	Draft    DraftResponse `json:"draft"`
}

// SubmitResponse is returned after a successful submission.
type SubmitResponse struct {
	Invoice domain.Invoice `json:"invoice"`
	Draft   DraftResponse  `json:"draft"` // the fresh draft that replaced the submitted one
}

// ValidationErrorResponse lists field-level errors keyed by JSON path.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// EmailSentResponse confirms a mailed invoice.
type EmailSentResponse struct {
	Recipient string `json:"recipient"`
	Filename  string `json:"filename"`
	Pages     int    `json:"pages"`
}

// TemplateResponse describes an available template.
type TemplateResponse struct {
	ID      domain.TemplateID `json:"id"`
	Default bool              `json:"default"`
}
