package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the backend-of-record lifecycle state.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusSent      InvoiceStatus = "SENT"
	StatusPaid      InvoiceStatus = "PAID"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is the submitted, persisted form of a draft. The company phone is stored as one
// absolute number ("+233241234567"); drafts split it back into dial code and local number.
type Invoice struct {
	ID               string          `json:"id"`
	InvoiceNumber    string          `json:"invoiceNumber"`
	Status           InvoiceStatus   `json:"status"`
	Company          CompanyInfo     `json:"company"`
	Client           ClientInfo      `json:"client"`
	IssueDate        Date            `json:"issueDate"`
	DueDate          Date            `json:"dueDate"`
	LineItems        Ledger          `json:"lineItems"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	Discount         decimal.Decimal `json:"discount"`
	Notes            string          `json:"notes"`
	Payment          PaymentInfo     `json:"payment"`
	Design           Design          `json:"design"`
	Currency         string          `json:"currency"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	DownloadCount    int             `json:"downloadCount"`
	LastDownloadedAt *time.Time      `json:"lastDownloadedAt,omitempty"`
	AuditFields
}

// InvoiceEventType names a lifecycle event published to the event stream.
type InvoiceEventType string

const (
	EventInvoiceSubmitted InvoiceEventType = "invoice.submitted"
	EventInvoiceExported  InvoiceEventType = "invoice.exported"
	EventInvoiceEmailed   InvoiceEventType = "invoice.emailed"
)

// InvoiceEvent is the payload published for lifecycle events.
type InvoiceEvent struct {
	Type          InvoiceEventType `json:"type"`
	InvoiceID     string           `json:"invoiceId,omitempty"`
	InvoiceNumber string           `json:"invoiceNumber"`
	Template      TemplateID       `json:"template,omitempty"`
	Currency      string           `json:"currency"`
	Total         decimal.Decimal  `json:"total"`
	OccurredAt    time.Time        `json:"occurredAt"`
}
