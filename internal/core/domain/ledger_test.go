package domain_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAmountsConsistent(t *testing.T, l domain.Ledger) {
	t.Helper()
	for _, item := range l {
		want := decimal.NewFromInt(item.Quantity).Mul(item.Rate)
		assert.True(t, want.Equal(item.Amount), "item %s: amount %s != %s", item.ID, item.Amount, want)
	}
}

func TestLedger_AddUpdateScenario(t *testing.T) {
	var ledger domain.Ledger
	ledger, item := ledger.Add("item-1")

	assert.Len(t, ledger, 1)
	assert.Equal(t, "", item.Description)
	assert.Equal(t, int64(1), item.Quantity)
	assert.True(t, item.Rate.IsZero())
	assert.True(t, item.Amount.IsZero())

	ledger, ok := ledger.Update("item-1", domain.LineItemPatch{Quantity: domain.Num("3"), Rate: domain.Num("150")})
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(450).Equal(ledger[0].Amount))
	assertAmountsConsistent(t, ledger)
}

func TestLedger_RemoveUnknownIsNoop(t *testing.T) {
	ledger, _ := domain.Ledger{}.Add("a")
	ledger, _ = ledger.Add("b")

	next, removed := ledger.Remove("missing")
	assert.False(t, removed)
	assert.Equal(t, ledger, next)

	next, removed = next.Remove("a")
	assert.True(t, removed)
	require.Len(t, next, 1)
	assert.Equal(t, "b", next[0].ID)
	assert.Len(t, ledger, 2, "receiver must not change")
}

func TestLedger_UpdateKeepsOrderAndUntouchedFields(t *testing.T) {
	ledger, _ := domain.Ledger{}.Add("a")
	ledger, _ = ledger.Add("b")
	ledger, _ = ledger.Add("c")

	desc := "Design work"
	ledger, _ = ledger.Update("b", domain.LineItemPatch{Description: &desc, Rate: domain.Num("20")})
	ledger, _ = ledger.Update("b", domain.LineItemPatch{Quantity: domain.Num("4")})

	assert.Equal(t, []string{"a", "b", "c"}, []string{ledger[0].ID, ledger[1].ID, ledger[2].ID})
	assert.Equal(t, "Design work", ledger[1].Description)
	assert.True(t, decimal.NewFromInt(80).Equal(ledger[1].Amount))
	assertAmountsConsistent(t, ledger)

	_, ok := ledger.Update("zzz", domain.LineItemPatch{Quantity: domain.Num("9")})
	assert.False(t, ok)
}

func TestLedger_InvalidNumbersCoerceToZero(t *testing.T) {
	ledger, _ := domain.Ledger{}.Add("a")
	ledger, _ = ledger.Update("a", domain.LineItemPatch{Quantity: domain.Num(""), Rate: domain.Num("abc")})

	assert.Equal(t, int64(0), ledger[0].Quantity)
	assert.True(t, ledger[0].Rate.IsZero())
	assert.True(t, ledger[0].Amount.IsZero())
}

func TestLedger_NegativeQuantityAccepted(t *testing.T) {
	ledger, _ := domain.Ledger{}.Add("a")
	ledger, _ = ledger.Update("a", domain.LineItemPatch{Quantity: domain.Num("-2"), Rate: domain.Num("10")})
	assert.True(t, decimal.NewFromInt(-20).Equal(ledger[0].Amount))
}

func TestNumberInput(t *testing.T) {
	tests := []struct {
		in      string
		wantInt int64
		wantDec string
	}{
		{"3", 3, "3"},
		{"3.7", 3, "3.7"},
		{" 12abc", 12, "12"},
		{"", 0, "0"},
		{"abc", 0, "0"},
		{"-4", -4, "-4"},
		{"1e3", 1000, "1000"},
		{".5", 0, "0.5"},
		{"99999999999999999999999", math.MaxInt64, "99999999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := domain.NumberInput(tt.in)
			assert.Equal(t, tt.wantInt, n.Int())
			assert.True(t, decimal.RequireFromString(tt.wantDec).Equal(n.Decimal()), "got %s", n.Decimal())
		})
	}
}

func TestNumberInput_UnmarshalJSON(t *testing.T) {
	var patch domain.LineItemPatch
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 3, "rate": "150.25"}`), &patch))
	assert.Equal(t, int64(3), patch.Quantity.Int())
	assert.Equal(t, "150.25", patch.Rate.Decimal().String())

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": true, "rate": {"x": 1}}`), &patch))
	assert.Equal(t, int64(0), patch.Quantity.Int())
	assert.True(t, patch.Rate.Decimal().IsZero())
}

func TestDate_JSON(t *testing.T) {
	var meta domain.InvoiceMeta
	require.NoError(t, json.Unmarshal([]byte(`{"invoiceNumber":"INV-001","issueDate":"2025-03-05","dueDate":""}`), &meta))
	assert.Equal(t, domain.NewDate(2025, time.March, 5), meta.IssueDate)
	assert.True(t, meta.DueDate.IsZero())

	out, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoiceNumber":"INV-001","issueDate":"2025-03-05","dueDate":""}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"issueDate":"05/03/2025"}`), &meta))
}

func TestNewDraft_Defaults(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.NextInvoiceNumber = 42
	settings.DefaultCurrency = "GHS"
	now := time.Date(2025, 12, 28, 23, 0, 0, 0, time.UTC)

	d := domain.NewDraft(settings, now)
	assert.Equal(t, "INV-042", d.Meta.InvoiceNumber)
	assert.Equal(t, domain.NewDate(2025, time.December, 28), d.Meta.IssueDate)
	assert.Equal(t, domain.NewDate(2026, time.January, 4), d.Meta.DueDate)
	assert.Equal(t, "GHS", d.Currency)
	assert.Empty(t, d.LineItems)
	assert.Equal(t, domain.PaymentMomo, d.Payment.Method)
	assert.Equal(t, domain.ProviderMTN, d.Payment.Momo.Provider)
	assert.Equal(t, "", d.Design.PrimaryColor)
	assert.Equal(t, now, d.LastSaved)
}

func TestPaymentInfo_HasDetailsOnlyForSelectedVariant(t *testing.T) {
	p := domain.PaymentInfo{
		Method: domain.PaymentMomo,
		Bank:   domain.BankDetails{BankName: "GCB"},
		Momo:   domain.MomoDetails{Provider: domain.ProviderTelecel},
	}
	assert.False(t, p.HasDetails(), "provider alone is not a detail")

	p.Method = domain.PaymentBank
	assert.True(t, p.HasDetails())
	assert.Equal(t, p.Bank, p.Selected())

	p.Method = "cheque"
	assert.Nil(t, p.Selected())
	assert.Equal(t, domain.PaymentMomo, p.Normalize().Method)
}
