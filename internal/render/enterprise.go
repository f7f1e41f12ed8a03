package render

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// EnterpriseTemplate uses a colored band for the header and spells the total out in words.
type EnterpriseTemplate struct{}

func (EnterpriseTemplate) ID() domain.TemplateID { return domain.TemplateEnterprise }

func (t EnterpriseTemplate) Render(data InvoiceData) Document {
	doc := newDocument(t.ID(), "TAX INVOICE", LayoutBanded, data)
	doc.add(
		issuerBlock(data, AlignLeft),
		metaBlock(data, AlignRight, Field{Label: "Currency", Value: data.Currency}),
		billToBlock(data, "Bill To", AlignLeft),
		itemsBlock(data),
		totalsBlock(data, AlignRight, true),
	)
	doc.addIf(paymentBlock(data, AlignLeft))
	doc.addIf(notesBlock(data, "Terms & Notes"))
	doc.add(footerBlock(AlignCenter,
		joinNonEmpty(" | ", data.Company.Name, data.Company.Email, formatPhone(data.Company.PhoneCode, data.Company.Phone)),
		"This invoice was generated electronically and is valid without a signature.",
	))
	return doc
}
