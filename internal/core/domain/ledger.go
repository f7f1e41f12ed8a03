package domain

import (
	"github.com/shopspring/decimal"
)

// LineItem is a single billable entry on a draft.
// Amount is derived from Quantity x Rate and is never set independently.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"` // negative values are accepted arithmetically
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"` // derived, recomputed on every mutation
}

// LineItemPatch carries the fields to merge into an existing line item. Nil fields are left untouched.
type LineItemPatch struct {
	Description *string      `json:"description,omitempty"`
	Quantity    *NumberInput `json:"quantity,omitempty"`
	Rate        *NumberInput `json:"rate,omitempty"`
}

// NewLineItem returns a blank line item with the given id: quantity 1, zero rate.
func NewLineItem(id string) LineItem {
	return LineItem{
		ID:          id,
		Description: "",
		Quantity:    1,
		Rate:        decimal.Zero,
		Amount:      decimal.Zero,
	}
}

// Recompute restores the amount invariant.
func (li LineItem) Recompute() LineItem {
	li.Amount = decimal.NewFromInt(li.Quantity).Mul(li.Rate)
	return li
}

// Apply merges the patch and recomputes the amount.
func (li LineItem) Apply(patch LineItemPatch) LineItem {
	if patch.Description != nil {
		li.Description = *patch.Description
	}
	if patch.Quantity != nil {
		li.Quantity = patch.Quantity.Int()
	}
	if patch.Rate != nil {
		li.Rate = patch.Rate.Decimal()
	}
	return li.Recompute()
}

// Ledger is the ordered collection of line items on a draft. Insertion order is display order.
// Mutating methods never modify the receiver; they return the new ledger.
type Ledger []LineItem

// Add appends a blank line item and returns the new ledger together with the added item.
func (l Ledger) Add(id string) (Ledger, LineItem) {
	item := NewLineItem(id)
	next := make(Ledger, 0, len(l)+1)
	next = append(next, l...)
	next = append(next, item)
	return next, item
}

// Remove drops the item with the given id. Unknown ids leave the ledger unchanged and report false.
func (l Ledger) Remove(id string) (Ledger, bool) {
	next := make(Ledger, 0, len(l))
	removed := false
	for _, item := range l {
		if item.ID == id {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if !removed {
		return l.Clone(), false
	}
	return next, true
}

// Update applies the patch to the item with the given id. Unknown ids report false.
func (l Ledger) Update(id string, patch LineItemPatch) (Ledger, bool) {
	next := l.Clone()
	for i := range next {
		if next[i].ID == id {
			next[i] = next[i].Apply(patch)
			return next, true
		}
	}
	return next, false
}

// Find returns the item with the given id.
func (l Ledger) Find(id string) (LineItem, bool) {
	for _, item := range l {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// Normalize recomputes every amount. Used after decoding items from storage or the backend.
func (l Ledger) Normalize() Ledger {
	next := make(Ledger, len(l))
	for i, item := range l {
		next[i] = item.Recompute()
	}
	return next
}

// Clone returns a copy that shares no backing array with l.
func (l Ledger) Clone() Ledger {
	next := make(Ledger, len(l))
	copy(next, l)
	return next
}
