package utils_test

import (
	"testing"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"0", "GHS", "GH₵0.00"},
		{"5", "XXX", "$5.00"},
		{"5", "", "$5.00"},
		{"1000000", "EUR", "€1,000,000.00"},
		{"99.999", "GBP", "£100.00"},
		{"12.345", "ngn", "₦12.35"},
		{"-55", "USD", "$-55.00"},
		{"-0.001", "KES", "KSh0.00"},
		{"-0.5", "USD", "$-0.50"},
		{"-1234567.891", "USD", "$-1,234,567.89"},
		{"90071992547409.93", "USD", "$90,071,992,547,409.93"},
		{"123456789012345678901.25", "EUR", "€123,456,789,012,345,678,901.25"},
	}

	for _, tt := range tests {
		t.Run(tt.code+"_"+tt.amount, func(t *testing.T) {
			got := utils.FormatMoney(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrencyTable(t *testing.T) {
	currencies := utils.SupportedCurrencies()
	assert.Len(t, currencies, 9)
	for _, c := range currencies {
		assert.True(t, utils.IsSupportedCurrency(c.Code), c.Code)
		assert.Equal(t, c.Symbol, utils.CurrencySymbol(c.Code))
	}
	assert.False(t, utils.IsSupportedCurrency("JPY"))
	assert.Equal(t, "$", utils.CurrencySymbol("JPY"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10", utils.FormatPercent(decimal.RequireFromString("10.00")))
	assert.Equal(t, "7.5", utils.FormatPercent(decimal.RequireFromString("7.5")))
}

func TestFormatDocumentDate(t *testing.T) {
	assert.Equal(t, "05 Mar 2025", utils.FormatDocumentDate(domain.NewDate(2025, 3, 5)))
	assert.Equal(t, "-", utils.FormatDocumentDate(domain.Date{}))
}
