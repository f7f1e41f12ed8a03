package domain

import "strings"

// PaymentMethod selects which PaymentInfo variant is active.
type PaymentMethod string

const (
	PaymentMomo PaymentMethod = "momo"
	PaymentBank PaymentMethod = "bank"
)

// MomoProvider is a supported mobile money network.
type MomoProvider string

const (
	ProviderMTN        MomoProvider = "mtn"
	ProviderTelecel    MomoProvider = "telecel"
	ProviderAirtelTigo MomoProvider = "airteltigo"
)

// DisplayName returns the customer-facing network name.
func (p MomoProvider) DisplayName() string {
	switch p {
	case ProviderMTN:
		return "MTN Mobile Money"
	case ProviderTelecel:
		return "Telecel Cash"
	case ProviderAirtelTigo:
		return "AirtelTigo Money"
	default:
		return strings.ToUpper(string(p))
	}
}

// Valid reports whether p is one of the supported networks.
func (p MomoProvider) Valid() bool {
	switch p {
	case ProviderMTN, ProviderTelecel, ProviderAirtelTigo:
		return true
	}
	return false
}

// MomoDetails holds mobile money payout details.
type MomoDetails struct {
	Provider    MomoProvider `json:"provider"`
	AccountName string       `json:"accountName"`
	Number      string       `json:"number"`
	CountryCode string       `json:"countryCode"`
}

// HasDetails reports whether any identifying field is filled in. The provider alone does not count.
func (m MomoDetails) HasDetails() bool {
	return strings.TrimSpace(m.AccountName) != "" || strings.TrimSpace(m.Number) != ""
}

// BankDetails holds bank transfer details.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Branch        string `json:"branch"`
	SwiftCode     string `json:"swiftCode"`
}

// HasDetails reports whether any identifying field is filled in.
func (b BankDetails) HasDetails() bool {
	for _, v := range []string{b.BankName, b.AccountName, b.AccountNumber, b.Branch, b.SwiftCode} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// PaymentInfo is a tagged variant over mobile money and bank transfer. Both variants keep their
// stored fields when the method switches; only the selected one is rendered or exported.
type PaymentInfo struct {
	Method PaymentMethod `json:"paymentMethod"`
	Momo   MomoDetails   `json:"momo"`
	Bank   BankDetails   `json:"bank"`
}

// PaymentVariant is implemented by MomoDetails and BankDetails.
type PaymentVariant interface {
	HasDetails() bool
}

// Selected returns the variant picked by Method, or nil for an unknown method.
func (p PaymentInfo) Selected() PaymentVariant {
	switch p.Method {
	case PaymentMomo:
		return p.Momo
	case PaymentBank:
		return p.Bank
	}
	return nil
}

// HasDetails reports whether the selected variant has anything worth rendering.
func (p PaymentInfo) HasDetails() bool {
	selected := p.Selected()
	return selected != nil && selected.HasDetails()
}

// Normalize fills in defaults for unknown or missing discriminators.
func (p PaymentInfo) Normalize() PaymentInfo {
	if p.Method != PaymentMomo && p.Method != PaymentBank {
		p.Method = PaymentMomo
	}
	if !p.Momo.Provider.Valid() {
		p.Momo.Provider = ProviderMTN
	}
	return p
}
