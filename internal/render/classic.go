package render

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// ClassicTemplate is a centered letterhead with notes above the payment details.
type ClassicTemplate struct{}

func (ClassicTemplate) ID() domain.TemplateID { return domain.TemplateClassic }

func (t ClassicTemplate) Render(data InvoiceData) Document {
	doc := newDocument(t.ID(), "Invoice", LayoutCentered, data)
	doc.add(
		issuerBlock(data, AlignCenter),
		billToBlock(data, "Billed To", AlignLeft),
		metaBlock(data, AlignRight),
		itemsBlock(data),
		totalsBlock(data, AlignRight, false),
	)
	doc.addIf(notesBlock(data, "Remarks"))
	doc.addIf(paymentBlock(data, AlignLeft))
	doc.add(footerBlock(AlignCenter, ThankYouFootnote, data.Company.Email))
	return doc
}
