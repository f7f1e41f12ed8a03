package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/shopspring/decimal"
)

// storedLineItem accepts quantity and rate as JSON numbers or strings.
type storedLineItem struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Quantity    domain.NumberInput `json:"quantity"`
	Rate        domain.NumberInput `json:"rate"`
}

func encodeDraft(d domain.Draft) ([]byte, error) {
	return json.Marshal(d)
}

// decodeDraft rebuilds a draft from its stored form, field by field. Fields that are missing or
// cannot be decoded keep the value from base; their names are returned for logging. Line items
// that cannot be decoded are dropped, and items without an id get a new one.
func decodeDraft(raw []byte, base domain.Draft, settings domain.Settings, newID func() string) (domain.Draft, []string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, []string{"*"}
	}

	d := base.Clone()
	var bad []string
	decode := func(key string, fn func(json.RawMessage) error) {
		value, ok := fields[key]
		if !ok || string(value) == "null" {
			return
		}
		if err := fn(value); err != nil {
			bad = append(bad, key)
		}
	}

	decode("company", func(v json.RawMessage) error { return decodePartial(v, &d.Company) })
	decode("client", func(v json.RawMessage) error { return decodePartial(v, &d.Client) })
	decode("meta", func(v json.RawMessage) error {
		meta, metaBad := decodeMeta(v, d.Meta)
		d.Meta = meta
		for _, f := range metaBad {
			bad = append(bad, "meta."+f)
		}
		return nil
	})
	decode("lineItems", func(v json.RawMessage) error {
		items, err := decodeLineItems(v, newID)
		if err != nil {
			return err
		}
		d.LineItems = items
		return nil
	})
	decode("taxRate", func(v json.RawMessage) error { return decodeNumber(v, &d.TaxRate) })
	decode("discount", func(v json.RawMessage) error { return decodeNumber(v, &d.Discount) })
	decode("notes", func(v json.RawMessage) error { return json.Unmarshal(v, &d.Notes) })
	decode("payment", func(v json.RawMessage) error { return decodePartial(v, &d.Payment) })
	decode("design", func(v json.RawMessage) error { return decodePartial(v, &d.Design) })
	decode("currency", func(v json.RawMessage) error { return json.Unmarshal(v, &d.Currency) })
	decode("email", func(v json.RawMessage) error { return decodePartial(v, &d.Email) })
	decode("editingInvoiceId", func(v json.RawMessage) error { return json.Unmarshal(v, &d.EditingInvoiceID) })
	decode("lastSaved", func(v json.RawMessage) error {
		var t time.Time
		if err := json.Unmarshal(v, &t); err != nil {
			return err
		}
		d.LastSaved = t
		return nil
	})

	return repairDraft(d, settings), bad
}

// decodePartial decodes into dst, keeping whatever fields decoded when another field has the
// wrong JSON type.
func decodePartial(raw json.RawMessage, dst any) error {
	err := json.Unmarshal(raw, dst)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		return nil
	}
	return err
}

func decodeMeta(raw json.RawMessage, base domain.InvoiceMeta) (domain.InvoiceMeta, []string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, []string{"*"}
	}
	meta := base
	var bad []string
	if v, ok := fields["invoiceNumber"]; ok {
		if err := json.Unmarshal(v, &meta.InvoiceNumber); err != nil {
			bad = append(bad, "invoiceNumber")
		}
	}
	for key, dst := range map[string]*domain.Date{"issueDate": &meta.IssueDate, "dueDate": &meta.DueDate} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		var date domain.Date
		if err := json.Unmarshal(v, &date); err != nil {
			bad = append(bad, key)
			continue
		}
		if !date.IsZero() {
			*dst = date
		}
	}
	return meta, bad
}

func decodeLineItems(raw json.RawMessage, newID func() string) (domain.Ledger, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(elems))
	items := make(domain.Ledger, 0, len(elems))
	for _, elem := range elems {
		var stored storedLineItem
		if err := decodePartial(elem, &stored); err != nil {
			continue
		}
		id := strings.TrimSpace(stored.ID)
		if id == "" || seen[id] {
			id = newID()
		}
		seen[id] = true
		items = append(items, domain.LineItem{
			ID:          id,
			Description: stored.Description,
			Quantity:    stored.Quantity.Int(),
			Rate:        stored.Rate.Decimal(),
		}.Recompute())
	}
	return items, nil
}

func decodeNumber(raw json.RawMessage, dst *decimal.Decimal) error {
	var n domain.NumberInput
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	if strings.TrimSpace(string(n)) == "" {
		return errors.New("not a number")
	}
	*dst = n.Decimal()
	return nil
}

// repairDraft restores invariants a stored draft may have lost across versions.
func repairDraft(d domain.Draft, settings domain.Settings) domain.Draft {
	if d.Company.PhoneCode == "" {
		d.Company.PhoneCode = utils.DialCodeForCountry(d.Company.Country)
	}
	d.Payment = d.Payment.Normalize()
	if id, ok := domain.ParseTemplateID(string(d.Design.TemplateID)); ok {
		d.Design.TemplateID = id
	} else {
		d.Design.TemplateID = settings.DefaultTemplate
	}
	if strings.TrimSpace(d.Currency) == "" {
		d.Currency = settings.DefaultCurrency
	}
	if d.LineItems == nil {
		d.LineItems = domain.Ledger{}
	}
	d.LineItems = d.LineItems.Normalize()
	return d
}
