package render

import (
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/utils"
)

// Placeholder texts shared by every template.
const (
	NoClientInfo     = "No client info"
	NoItemsAdded     = "No items added"
	UntitledCompany  = "Your Company"
	UntitledItem     = "-"
	ThankYouFootnote = "Thank you for your business."
)

// ItemColumns is the line-item table header used by every template.
var ItemColumns = []string{"Description", "Qty", "Rate", "Amount"}

func issuerBlock(data InvoiceData, align Align) Block {
	c := data.Company
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = UntitledCompany
	}

	return Block{
		Kind:  BlockIssuer,
		Title: name,
		Align: align,
		Image: strings.TrimSpace(c.Logo),
		Lines: nonEmpty(
			c.Address,
			joinNonEmpty(" ", c.City, c.Zip),
			c.Country,
			formatPhone(c.PhoneCode, c.Phone),
			c.Email,
		),
	}
}

func billToBlock(data InvoiceData, title string, align Align) Block {
	b := Block{Kind: BlockBillTo, Title: title, Align: align}
	c := data.Client
	if c.IsEmpty() {
		b.Lines = []string{NoClientInfo}
		b.Placeholder = true
		return b
	}
	b.Lines = nonEmpty(
		c.Name,
		c.Address,
		joinNonEmpty(" ", c.City, c.Zip),
		c.Country,
		c.Phone,
		c.Email,
	)
	return b
}

func metaBlock(data InvoiceData, align Align, extra ...Field) Block {
	number := data.InvoiceNumber
	if number == "" {
		number = "-"
	}
	fields := []Field{
		{Label: "Invoice Number", Value: number},
		{Label: "Issue Date", Value: data.IssueDate},
		{Label: "Due Date", Value: data.DueDate},
	}
	return Block{Kind: BlockMeta, Align: align, Fields: append(fields, extra...)}
}

func itemsBlock(data InvoiceData) Block {
	b := Block{
		Kind:    BlockItems,
		Align:   AlignLeft,
		Columns: append([]string(nil), ItemColumns...),
	}
	if len(data.Items) == 0 {
		b.Rows = []Row{{Cells: []string{NoItemsAdded}, Placeholder: true}}
		b.Placeholder = true
		return b
	}

	b.Rows = make([]Row, 0, len(data.Items))
	for _, item := range data.Items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			desc = UntitledItem
		}
		b.Rows = append(b.Rows, Row{Cells: []string{
			desc,
			strconv.FormatInt(item.Quantity, 10),
			utils.FormatMoney(item.Rate, data.Currency),
			utils.FormatMoney(item.Amount, data.Currency),
		}})
	}
	return b
}

// totalsFields is the single place where totals are turned into display rows.
func totalsFields(data InvoiceData) []Field {
	t := data.Totals
	fields := []Field{{Label: "Subtotal", Value: utils.FormatMoney(t.Subtotal, data.Currency)}}
	if t.ShowDiscount() {
		fields = append(fields, Field{Label: "Discount", Value: "-" + utils.FormatMoney(t.Discount, data.Currency)})
	}
	if t.ShowTax() {
		fields = append(fields, Field{
			Label: "Tax (" + utils.FormatPercent(t.TaxRate) + "%)",
			Value: utils.FormatMoney(t.Tax, data.Currency),
		})
	}
	return append(fields, Field{Label: "Total", Value: utils.FormatMoney(t.Total, data.Currency)})
}

func totalsBlock(data InvoiceData, align Align, withWords bool) Block {
	b := Block{Kind: BlockTotals, Align: align, Fields: totalsFields(data)}
	if withWords {
		b.Lines = []string{"Amount in words: " + data.AmountInWords}
	}
	return b
}

func paymentBlock(data InvoiceData, align Align) (Block, bool) {
	if data.Payment == nil {
		return Block{}, false
	}
	return Block{
		Kind:   BlockPayment,
		Title:  "Payment Details - " + data.Payment.Title,
		Align:  align,
		Fields: append([]Field(nil), data.Payment.Fields...),
	}, true
}

func notesBlock(data InvoiceData, title string) (Block, bool) {
	if data.Notes == "" {
		return Block{}, false
	}
	return Block{
		Kind:  BlockNotes,
		Title: title,
		Align: AlignLeft,
		Lines: strings.Split(data.Notes, "\n"),
	}, true
}

func footerBlock(align Align, lines ...string) Block {
	return Block{Kind: BlockFooter, Align: align, Lines: nonEmpty(lines...)}
}

func formatPhone(code, local string) string {
	local = strings.TrimSpace(local)
	if local == "" {
		return ""
	}
	if code == "" || strings.HasPrefix(local, "+") {
		return local
	}
	return code + " " + strings.TrimPrefix(local, "0")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinNonEmpty(sep string, values ...string) string {
	return strings.Join(nonEmpty(values...), sep)
}
