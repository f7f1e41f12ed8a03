package mapping_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCreateInvoiceRequest_NullsAndItems(t *testing.T) {
	d := domain.NewDraft(domain.DefaultSettings(), time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	d.Company = domain.CompanyInfo{Name: "Acme", Country: "Ghana", PhoneCode: "+233", Phone: "0241234567"}
	d.Client.Email = "ap@globex.test"
	d.LineItems = domain.Ledger{domain.LineItem{ID: "a", Description: "Work", Quantity: 3, Rate: decimal.NewFromInt(150)}.Recompute()}
	d.Email.Subject = "not sent to the backend"

	req := mapping.ToCreateInvoiceRequest(d)
	assert.Equal(t, "+233241234567", *req.CompanyPhone)
	assert.Nil(t, req.ClientName)
	assert.Nil(t, req.Notes)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "clientName", "empty optional fields are sent, as null")
	assert.Nil(t, generic["clientName"])
	assert.NotContains(t, generic, "subject")
	assert.NotContains(t, generic, "lastSaved")
	assert.Equal(t, "2025-03-05", generic["issueDate"])
	assert.Equal(t, "2025-03-12", generic["dueDate"])

	items := generic["lineItems"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.NotContains(t, item, "amount")
	assert.NotContains(t, item, "id")
	assert.Equal(t, "Work", item["description"])
}

func TestToDraft_SplitsPhoneAndMarksEditing(t *testing.T) {
	resp := dto.InvoiceResponse{ID: "inv-9", Status: "sent"}
	resp.InvoiceNumber = "INV-009"
	resp.IssueDate = "2025-02-01"
	resp.DueDate = "2025-02-08T00:00:00Z"
	phone := "+233241234567"
	country := "Ghana"
	resp.CompanyPhone = &phone
	resp.CompanyCountry = &country
	resp.ClientEmail = "ap@globex.test"
	resp.PaymentMethod = "bank"
	resp.TemplateID = "corporate"
	resp.LineItems = []dto.InvoiceLineItemResponse{{ID: "x", Description: "Work", Quantity: 2, Rate: decimal.NewFromInt(10), Amount: decimal.NewFromInt(999)}}

	inv := mapping.ToDomainInvoice(resp)
	assert.Equal(t, domain.StatusSent, inv.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(inv.LineItems[0].Amount), "amount is recomputed, not trusted")

	d := mapping.ToDraft(inv, domain.DefaultSettings(), time.Now())
	assert.Equal(t, "+233", d.Company.PhoneCode)
	assert.Equal(t, "241234567", d.Company.Phone)
	assert.Equal(t, "inv-9", d.EditingInvoiceID)
	assert.True(t, d.IsEditing())
	assert.Equal(t, "INV-009", d.Meta.InvoiceNumber)
	assert.Equal(t, domain.NewDate(2025, 2, 8), d.Meta.DueDate)
	assert.Equal(t, domain.TemplateCorporate, d.Design.TemplateID)
	assert.Equal(t, domain.PaymentBank, d.Payment.Method)
	assert.Equal(t, "ap@globex.test", d.Email.Recipient)
}

func TestToDraft_LocalPhoneUsesCountryDialCode(t *testing.T) {
	inv := domain.Invoice{
		ID:      "inv-1",
		Company: domain.CompanyInfo{Phone: "0712345678", Country: "Kenya"},
	}
	d := mapping.ToDraft(inv, domain.DefaultSettings(), time.Now())
	assert.Equal(t, "+254", d.Company.PhoneCode)
	assert.Equal(t, "0712345678", d.Company.Phone)
	assert.Equal(t, domain.TemplateModern, d.Design.TemplateID)
}
