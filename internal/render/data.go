package render

import (
	"regexp"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/SscSPs/invoice_wizard/internal/utils/accounting"
)

// FallbackColor is used when neither the draft nor the settings carry a usable color.
const FallbackColor = "#2563eb"

// FallbackFont is used when neither the draft nor the settings carry a usable font family.
const FallbackFont = "Inter"

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

// PaymentDetails is the display form of the selected payment variant.
type PaymentDetails struct {
	Method domain.PaymentMethod `json:"method"`
	Title  string               `json:"title"`
	Fields []Field              `json:"fields"`
}

// InvoiceData is the one normalized shape every template consumes.
type InvoiceData struct {
	Company       domain.CompanyInfo `json:"company"`
	Client        domain.ClientInfo  `json:"client"`
	InvoiceNumber string             `json:"invoiceNumber"`
	IssueDate     string             `json:"issueDate"`
	DueDate       string             `json:"dueDate"`
	Items         []domain.LineItem  `json:"items"`
	Currency      string             `json:"currency"`
	Color         string             `json:"color"`
	Font          string             `json:"font"`
	Totals        accounting.Totals  `json:"totals"`
	Payment       *PaymentDetails    `json:"payment,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	AmountInWords string             `json:"amountInWords"`
}

// BuildInvoiceData normalizes a draft for rendering. The default color and font come from the
// settings passed in; nothing here reads global state.
func BuildInvoiceData(d domain.Draft, settings domain.Settings) InvoiceData {
	items := d.LineItems.Normalize()
	totals := accounting.CalculateTotals(items, d.Discount, d.TaxRate)

	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency == "" {
		currency = strings.ToUpper(settings.DefaultCurrency)
	}

	return InvoiceData{
		Company:       d.Company,
		Client:        d.Client,
		InvoiceNumber: strings.TrimSpace(d.Meta.InvoiceNumber),
		IssueDate:     utils.FormatDocumentDate(d.Meta.IssueDate),
		DueDate:       utils.FormatDocumentDate(d.Meta.DueDate),
		Items:         items,
		Currency:      currency,
		Color:         ResolveColor(d.Design.PrimaryColor, settings.DefaultColor),
		Font:          resolveFont(d.Design.FontFamily, settings.DefaultFont),
		Totals:        totals,
		Payment:       BuildPaymentDetails(d.Payment),
		Notes:         strings.TrimSpace(d.Notes),
		AmountInWords: utils.NumberToWords(totals.Total),
	}
}

// ResolveColor returns draftColor unless it is the empty "use default" sentinel or not a
// #RRGGBB color, in which case defaultColor is used. FallbackColor covers a bad default.
func ResolveColor(draftColor, defaultColor string) string {
	if c := sanitizeColor(draftColor); c != "" {
		return c
	}
	if c := sanitizeColor(defaultColor); c != "" {
		return c
	}
	return FallbackColor
}

func resolveFont(draftFont, defaultFont string) string {
	if f := sanitizeFont(draftFont); f != "" {
		return f
	}
	if f := sanitizeFont(defaultFont); f != "" {
		return f
	}
	return FallbackFont
}

// IsHexColor reports whether value is a #RRGGBB color.
func IsHexColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

func sanitizeColor(value string) string {
	value = strings.TrimSpace(value)
	if IsHexColor(value) {
		return strings.ToLower(value)
	}
	return ""
}

func sanitizeFont(value string) string {
	value = strings.TrimSpace(value)
	if fontFamilyFilter.MatchString(value) {
		return value
	}
	return ""
}

// BuildPaymentDetails formats the selected payment variant. It returns nil when the selected
// variant has no identifying field, so templates skip the block.
func BuildPaymentDetails(p domain.PaymentInfo) *PaymentDetails {
	if !p.HasDetails() {
		return nil
	}

	switch p.Method {
	case domain.PaymentMomo:
		number := p.Momo.Number
		if p.Momo.CountryCode != "" {
			number = utils.JoinPhone(p.Momo.CountryCode, p.Momo.Number)
		}
		return &PaymentDetails{
			Method: p.Method,
			Title:  "Mobile Money",
			Fields: nonEmptyFields(
				Field{Label: "Network", Value: p.Momo.Provider.DisplayName()},
				Field{Label: "Account Name", Value: p.Momo.AccountName},
				Field{Label: "Number", Value: number},
			),
		}
	case domain.PaymentBank:
		return &PaymentDetails{
			Method: p.Method,
			Title:  "Bank Transfer",
			Fields: nonEmptyFields(
				Field{Label: "Bank", Value: p.Bank.BankName},
				Field{Label: "Account Name", Value: p.Bank.AccountName},
				Field{Label: "Account Number", Value: p.Bank.AccountNumber},
				Field{Label: "Branch", Value: p.Bank.Branch},
				Field{Label: "SWIFT", Value: p.Bank.SwiftCode},
			),
		}
	}
	return nil
}

func nonEmptyFields(fields ...Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}
