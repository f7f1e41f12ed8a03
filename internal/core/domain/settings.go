package domain

import "fmt"

// Settings are the user's defaults, stored in their own slot apart from the draft.
type Settings struct {
	DefaultCurrency   string     `json:"defaultCurrency"`
	DefaultColor      string     `json:"defaultColor"`
	DefaultFont       string     `json:"defaultFont"`
	DefaultTemplate   TemplateID `json:"defaultTemplate"`
	InvoicePrefix     string     `json:"invoicePrefix"`
	NextInvoiceNumber int        `json:"nextInvoiceNumber"`
}

// DefaultSettings returns the settings used before the user saves any of their own.
func DefaultSettings() Settings {
	return Settings{
		DefaultCurrency:   "USD",
		DefaultColor:      "#2563eb",
		DefaultFont:       "Inter",
		DefaultTemplate:   TemplateModern,
		InvoicePrefix:     "INV-",
		NextInvoiceNumber: 1,
	}
}

// FormatInvoiceNumber renders prefix + number zero-padded to three digits.
func (s Settings) FormatInvoiceNumber(number int) string {
	return fmt.Sprintf("%s%03d", s.InvoicePrefix, number)
}

// NextNumber is the invoice number a fresh draft receives.
func (s Settings) NextNumber() string {
	return s.FormatInvoiceNumber(s.NextInvoiceNumber)
}
