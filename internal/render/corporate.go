package render

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// CorporateTemplate is a formal letterhead with meta first, payment before notes and the
// total in words.
type CorporateTemplate struct{}

func (CorporateTemplate) ID() domain.TemplateID { return domain.TemplateCorporate }

func (t CorporateTemplate) Render(data InvoiceData) Document {
	doc := newDocument(t.ID(), "INVOICE", LayoutLetterhead, data)
	doc.add(
		issuerBlock(data, AlignRight),
		metaBlock(data, AlignLeft),
		billToBlock(data, "Invoice To", AlignLeft),
		itemsBlock(data),
		totalsBlock(data, AlignRight, true),
	)
	doc.addIf(paymentBlock(data, AlignLeft))
	doc.addIf(notesBlock(data, "Additional Information"))
	doc.add(footerBlock(AlignCenter, ThankYouFootnote, data.Company.Name))
	return doc
}
