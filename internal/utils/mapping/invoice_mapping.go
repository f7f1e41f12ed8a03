package mapping

import (
	"strings"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/utils"
)

// optional returns nil for blank strings so the submission sends null instead of "".
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToCreateInvoiceRequest converts a draft into the submission contract. UI-only fields
// (email composer, lastSaved, editing back-reference) are not sent.
func ToCreateInvoiceRequest(d domain.Draft) dto.CreateInvoiceRequest {
	items := make([]dto.InvoiceLineItemRequest, len(d.LineItems))
	for i, item := range d.LineItems {
		items[i] = dto.InvoiceLineItemRequest{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		}
	}

	payment := d.Payment.Normalize()
	return dto.CreateInvoiceRequest{
		InvoiceNumber: strings.TrimSpace(d.Meta.InvoiceNumber),
		IssueDate:     d.Meta.IssueDate.String(),
		DueDate:       d.Meta.DueDate.String(),
		Currency:      d.Currency,

		CompanyName:    optional(d.Company.Name),
		CompanyLogo:    optional(d.Company.Logo),
		CompanyAddress: optional(d.Company.Address),
		CompanyCity:    optional(d.Company.City),
		CompanyZip:     optional(d.Company.Zip),
		CompanyCountry: optional(d.Company.Country),
		CompanyPhone:   optional(utils.JoinPhone(d.Company.PhoneCode, d.Company.Phone)),
		CompanyEmail:   optional(d.Company.Email),

		ClientName:    optional(d.Client.Name),
		ClientAddress: optional(d.Client.Address),
		ClientCity:    optional(d.Client.City),
		ClientZip:     optional(d.Client.Zip),
		ClientCountry: optional(d.Client.Country),
		ClientPhone:   optional(d.Client.Phone),
		ClientEmail:   strings.TrimSpace(d.Client.Email),

		LineItems: items,
		TaxRate:   d.TaxRate,
		Discount:  d.Discount,
		Notes:     optional(d.Notes),

		PaymentMethod:     string(payment.Method),
		MomoProvider:      optional(string(payment.Momo.Provider)),
		MomoAccountName:   optional(payment.Momo.AccountName),
		MomoNumber:        optional(payment.Momo.Number),
		MomoCountryCode:   optional(payment.Momo.CountryCode),
		BankName:          optional(payment.Bank.BankName),
		BankAccountName:   optional(payment.Bank.AccountName),
		BankAccountNumber: optional(payment.Bank.AccountNumber),
		BankBranch:        optional(payment.Bank.Branch),
		BankSwiftCode:     optional(payment.Bank.SwiftCode),

		PrimaryColor: optional(d.Design.PrimaryColor),
		FontFamily:   optional(d.Design.FontFamily),
		TemplateID:   string(d.Design.TemplateID),
	}
}

// ToDomainInvoice converts the backend representation into a domain Invoice.
// Unparseable dates become zero dates rather than failing the whole load.
func ToDomainInvoice(r dto.InvoiceResponse) domain.Invoice {
	issue, _ := domain.ParseDate(r.IssueDate)
	due, _ := domain.ParseDate(r.DueDate)

	items := make(domain.Ledger, len(r.LineItems))
	for i, item := range r.LineItems {
		items[i] = domain.LineItem{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		}.Recompute()
	}

	return domain.Invoice{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		Status:        domain.InvoiceStatus(strings.ToUpper(r.Status)),
		Company: domain.CompanyInfo{
			Name:    deref(r.CompanyName),
			Logo:    deref(r.CompanyLogo),
			Address: deref(r.CompanyAddress),
			City:    deref(r.CompanyCity),
			Zip:     deref(r.CompanyZip),
			Country: deref(r.CompanyCountry),
			Phone:   deref(r.CompanyPhone),
			Email:   deref(r.CompanyEmail),
		},
		Client: domain.ClientInfo{
			Name:    deref(r.ClientName),
			Address: deref(r.ClientAddress),
			City:    deref(r.ClientCity),
			Zip:     deref(r.ClientZip),
			Country: deref(r.ClientCountry),
			Phone:   deref(r.ClientPhone),
			Email:   r.ClientEmail,
		},
		IssueDate: issue,
		DueDate:   due,
		LineItems: items,
		TaxRate:   r.TaxRate,
		Discount:  r.Discount,
		Notes:     deref(r.Notes),
		Payment: domain.PaymentInfo{
			Method: domain.PaymentMethod(r.PaymentMethod),
			Momo: domain.MomoDetails{
				Provider:    domain.MomoProvider(deref(r.MomoProvider)),
				AccountName: deref(r.MomoAccountName),
				Number:      deref(r.MomoNumber),
				CountryCode: deref(r.MomoCountryCode),
			},
			Bank: domain.BankDetails{
				BankName:      deref(r.BankName),
				AccountName:   deref(r.BankAccountName),
				AccountNumber: deref(r.BankAccountNumber),
				Branch:        deref(r.BankBranch),
				SwiftCode:     deref(r.BankSwiftCode),
			},
		}.Normalize(),
		Design: domain.Design{
			PrimaryColor: deref(r.PrimaryColor),
			FontFamily:   deref(r.FontFamily),
			TemplateID:   domain.TemplateID(r.TemplateID),
		},
		Currency:         r.Currency,
		TotalAmount:      r.TotalAmount,
		DownloadCount:    r.DownloadCount,
		LastDownloadedAt: r.LastDownloadedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.CreatedAt,
			LastUpdatedAt: r.UpdatedAt,
		},
	}
}

// ToDraft opens a persisted invoice for editing. The absolute company phone is split back into
// dial code and local number; when no known prefix matches, the dial code comes from the country.
func ToDraft(inv domain.Invoice, settings domain.Settings, now time.Time) domain.Draft {
	d := domain.NewDraft(settings, now)

	company := inv.Company
	code, local := utils.SplitPhone(company.Phone)
	if code == "" {
		code = utils.DialCodeForCountry(company.Country)
	}
	company.PhoneCode = code
	company.Phone = local

	d.Company = company
	d.Client = inv.Client
	d.Meta = domain.InvoiceMeta{
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
	}
	d.LineItems = inv.LineItems.Normalize()
	d.TaxRate = inv.TaxRate
	d.Discount = inv.Discount
	d.Notes = inv.Notes
	d.Payment = inv.Payment.Normalize()
	d.Design = inv.Design
	if !d.Design.TemplateID.Valid() {
		d.Design.TemplateID = settings.DefaultTemplate
	}
	if inv.Currency != "" {
		d.Currency = inv.Currency
	}
	d.Email.Recipient = inv.Client.Email
	d.EditingInvoiceID = inv.ID
	return d
}
