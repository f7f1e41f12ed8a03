package render

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// ModernTemplate puts the issuer and the invoice meta side by side above a full-width table.
type ModernTemplate struct{}

func (ModernTemplate) ID() domain.TemplateID { return domain.TemplateModern }

func (t ModernTemplate) Render(data InvoiceData) Document {
	doc := newDocument(t.ID(), "INVOICE", LayoutSplitHeader, data)
	doc.add(
		issuerBlock(data, AlignLeft),
		metaBlock(data, AlignRight),
		billToBlock(data, "Bill To", AlignLeft),
		itemsBlock(data),
		totalsBlock(data, AlignRight, false),
	)
	doc.addIf(paymentBlock(data, AlignLeft))
	doc.addIf(notesBlock(data, "Notes"))
	doc.add(footerBlock(AlignCenter, ThankYouFootnote))
	return doc
}
