package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineItemRequest is a line item as sent to the backend. The amount is omitted; the
// backend recomputes it from quantity and rate.
type InvoiceLineItemRequest struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// CreateInvoiceRequest is the submission contract of the backend of record. Optional fields are
// pointers and are sent as null when empty.
type CreateInvoiceRequest struct {
	InvoiceNumber string `json:"invoiceNumber"`
	IssueDate     string `json:"issueDate"`
	DueDate       string `json:"dueDate"`
	Currency      string `json:"currency"`

	CompanyName    *string `json:"companyName"`
	CompanyLogo    *string `json:"companyLogo"`
	CompanyAddress *string `json:"companyAddress"`
	CompanyCity    *string `json:"companyCity"`
	CompanyZip     *string `json:"companyZip"`
	CompanyCountry *string `json:"companyCountry"`
	CompanyPhone   *string `json:"companyPhone"` // absolute, dial code included
	CompanyEmail   *string `json:"companyEmail"`

	ClientName    *string `json:"clientName"`
	ClientAddress *string `json:"clientAddress"`
	ClientCity    *string `json:"clientCity"`
	ClientZip     *string `json:"clientZip"`
	ClientCountry *string `json:"clientCountry"`
	ClientPhone   *string `json:"clientPhone"`
	ClientEmail   string  `json:"clientEmail"`

	LineItems []InvoiceLineItemRequest `json:"lineItems"`
	TaxRate   decimal.Decimal          `json:"taxRate"`
	Discount  decimal.Decimal          `json:"discount"`
	Notes     *string                  `json:"notes"`

	PaymentMethod     string  `json:"paymentMethod"`
	MomoProvider      *string `json:"momoProvider"`
	MomoAccountName   *string `json:"momoAccountName"`
	MomoNumber        *string `json:"momoNumber"`
	MomoCountryCode   *string `json:"momoCountryCode"`
	BankName          *string `json:"bankName"`
	BankAccountName   *string `json:"bankAccountName"`
	BankAccountNumber *string `json:"bankAccountNumber"`
	BankBranch        *string `json:"bankBranch"`
	BankSwiftCode     *string `json:"bankSwiftCode"`

	PrimaryColor *string `json:"primaryColor"`
	FontFamily   *string `json:"fontFamily"`
	TemplateID   string  `json:"templateId"`
}

// InvoiceLineItemResponse is a persisted line item.
type InvoiceLineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the backend's representation of a persisted invoice.
type InvoiceResponse struct {
	CreateInvoiceRequest
	ID               string                    `json:"id"`
	Status           string                    `json:"status"`
	LineItems        []InvoiceLineItemResponse `json:"lineItems"`
	TotalAmount      decimal.Decimal           `json:"totalAmount"`
	DownloadCount    int                       `json:"downloadCount"`
	LastDownloadedAt *time.Time                `json:"lastDownloadedAt"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}
