package render

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// FreelancerTemplate leads with the client, then the sender, in a minimal single column.
type FreelancerTemplate struct{}

func (FreelancerTemplate) ID() domain.TemplateID { return domain.TemplateFreelancer }

func (t FreelancerTemplate) Render(data InvoiceData) Document {
	doc := newDocument(t.ID(), "Invoice", LayoutMinimal, data)
	issuer := issuerBlock(data, AlignLeft)
	doc.add(
		billToBlock(data, "For", AlignLeft),
		issuer,
		metaBlock(data, AlignLeft),
		itemsBlock(data),
		totalsBlock(data, AlignLeft, false),
	)
	doc.addIf(paymentBlock(data, AlignLeft))
	doc.addIf(notesBlock(data, "Notes"))
	doc.add(footerBlock(AlignLeft, "Thanks! - "+issuer.Title))
	return doc
}
