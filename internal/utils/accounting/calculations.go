package accounting

import (
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are the derived monetary values of a draft. They are never stored; every caller
// (templates, export, submission) recomputes them through CalculateTotals.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	TaxableBase decimal.Decimal `json:"taxableBase"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// CalculateTotals derives subtotal, discount, tax and total with a fixed order of operations:
// the discount is subtracted before tax is applied. A discount larger than the subtotal yields
// a negative taxable base and total; nothing is clamped and nothing is rounded here.
func CalculateTotals(items []domain.LineItem, discount, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}

	taxableBase := subtotal.Sub(discount)
	tax := taxableBase.Mul(taxRate).Div(hundred)

	return Totals{
		Subtotal:    subtotal,
		Discount:    discount,
		TaxableBase: taxableBase,
		TaxRate:     taxRate,
		Tax:         tax,
		Total:       taxableBase.Add(tax),
	}
}

// DraftTotals is CalculateTotals over a draft's ledger and adjustments.
func DraftTotals(d domain.Draft) Totals {
	return CalculateTotals(d.LineItems, d.Discount, d.TaxRate)
}

// ShowDiscount reports whether a discount row belongs on a rendered document.
func (t Totals) ShowDiscount() bool {
	return t.Discount.IsPositive()
}

// ShowTax reports whether a tax row belongs on a rendered document.
func (t Totals) ShowTax() bool {
	return t.TaxRate.IsPositive()
}
