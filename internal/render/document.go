package render

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// BlockKind names the structural role of a block. Every template emits the same kinds.
type BlockKind string

const (
	BlockIssuer  BlockKind = "issuer"
	BlockBillTo  BlockKind = "bill_to"
	BlockMeta    BlockKind = "meta"
	BlockItems   BlockKind = "items"
	BlockTotals  BlockKind = "totals"
	BlockPayment BlockKind = "payment"
	BlockNotes   BlockKind = "notes"
	BlockFooter  BlockKind = "footer"
)

// Align is a horizontal placement hint.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Layout identifies the overall arrangement a template uses.
type Layout string

const (
	LayoutSplitHeader Layout = "split-header"
	LayoutCentered    Layout = "centered"
	LayoutBanded      Layout = "banded"
	LayoutMinimal     Layout = "minimal"
	LayoutLetterhead  Layout = "letterhead"
)

// Field is a label/value pair.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is one line-item table row. Placeholder rows span the whole table.
type Row struct {
	Cells       []string `json:"cells"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// Block is one section of a rendered document.
type Block struct {
	Kind        BlockKind `json:"kind"`
	Title       string    `json:"title,omitempty"`
	Align       Align     `json:"align"`
	Image       string    `json:"image,omitempty"`
	Lines       []string  `json:"lines,omitempty"`
	Fields      []Field   `json:"fields,omitempty"`
	Columns     []string  `json:"columns,omitempty"`
	Rows        []Row     `json:"rows,omitempty"`
	Placeholder bool      `json:"placeholder,omitempty"`
}

// Theme carries the resolved style inputs of a document.
type Theme struct {
	Color  string `json:"color"`
	Font   string `json:"font"`
	Layout Layout `json:"layout"`
}

// Document is the renderer-independent tree a template produces.
type Document struct {
	Template domain.TemplateID `json:"template"`
	Title    string            `json:"title"`
	Number   string            `json:"number"`
	Theme    Theme             `json:"theme"`
	Blocks   []Block           `json:"blocks"`
}

// Block returns the first block of the given kind.
func (d Document) Block(kind BlockKind) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}

// Has reports whether the document contains a block of the given kind.
func (d Document) Has(kind BlockKind) bool {
	_, ok := d.Block(kind)
	return ok
}

func (d *Document) add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// addIf appends b when ok; used with the optional block builders.
func (d *Document) addIf(b Block, ok bool) {
	if ok {
		d.Blocks = append(d.Blocks, b)
	}
}

func newDocument(id domain.TemplateID, title string, layout Layout, data InvoiceData) Document {
	return Document{
		Template: id,
		Title:    title,
		Number:   data.InvoiceNumber,
		Theme: Theme{
			Color:  data.Color,
			Font:   data.Font,
			Layout: layout,
		},
	}
}
