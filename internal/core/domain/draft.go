package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentTermDays is the gap between issue and due date on a fresh draft.
const DefaultPaymentTermDays = 7

// CompanyInfo identifies the issuer. Phone is the local number; PhoneCode carries the dial code.
type CompanyInfo struct {
	Name      string `json:"name"`
	Logo      string `json:"logo"` // URL or data URI
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	PhoneCode string `json:"phoneCode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// ClientInfo identifies the bill-to party. Only Email is required, and only at submission.
type ClientInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// IsEmpty reports whether there is nothing identifying to render in a bill-to block.
func (c ClientInfo) IsEmpty() bool {
	return c.Name == "" && c.Email == ""
}

// InvoiceMeta carries the document number and dates.
type InvoiceMeta struct {
	InvoiceNumber string `json:"invoiceNumber"`
	IssueDate     Date   `json:"issueDate"`
	DueDate       Date   `json:"dueDate"`
}

// EmailFields are used when the exported invoice is mailed to the client.
type EmailFields struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Draft is the in-progress invoice. Totals are deliberately absent: they are always derived
// from LineItems, Discount and TaxRate.
type Draft struct {
	Company          CompanyInfo     `json:"company"`
	Client           ClientInfo      `json:"client"`
	Meta             InvoiceMeta     `json:"meta"`
	LineItems        Ledger          `json:"lineItems"`
	TaxRate          decimal.Decimal `json:"taxRate"`  // percentage 0-100
	Discount         decimal.Decimal `json:"discount"` // flat amount
	Notes            string          `json:"notes"`
	Payment          PaymentInfo     `json:"payment"`
	Design           Design          `json:"design"`
	Currency         string          `json:"currency"`
	Email            EmailFields     `json:"email"`
	EditingInvoiceID string          `json:"editingInvoiceId,omitempty"`
	LastSaved        time.Time       `json:"lastSaved"`
}

// NewDraft returns an empty draft seeded from the user's settings.
func NewDraft(settings Settings, now time.Time) Draft {
	issue := DateOf(now)
	return Draft{
		Meta: InvoiceMeta{
			InvoiceNumber: settings.NextNumber(),
			IssueDate:     issue,
			DueDate:       issue.AddDays(DefaultPaymentTermDays),
		},
		LineItems: Ledger{},
		TaxRate:   decimal.Zero,
		Discount:  decimal.Zero,
		Payment:   PaymentInfo{}.Normalize(),
		Design: Design{
			PrimaryColor: "",
			FontFamily:   settings.DefaultFont,
			TemplateID:   settings.DefaultTemplate,
		},
		Currency:  settings.DefaultCurrency,
		LastSaved: now,
	}
}

// Clone returns a deep copy that can be mutated without affecting d.
func (d Draft) Clone() Draft {
	d.LineItems = d.LineItems.Clone()
	return d
}

// IsEditing reports whether the draft was loaded from an existing invoice.
func (d Draft) IsEditing() bool {
	return d.EditingInvoiceID != ""
}
