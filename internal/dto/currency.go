package dto

import "github.com/SscSPs/invoice_wizard/internal/utils"

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ListCurrenciesResponse wraps the supported currency table.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToCurrencyResponse converts a utils.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c utils.Currency) CurrencyResponse {
	return CurrencyResponse{Code: c.Code, Symbol: c.Symbol, Name: c.Name}
}

// ToListCurrenciesResponse converts the currency table.
func ToListCurrenciesResponse(currencies []utils.Currency) ListCurrenciesResponse {
	out := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		out[i] = ToCurrencyResponse(c)
	}
	return ListCurrenciesResponse{Currencies: out}
}
