package utils_test

import (
	"testing"

	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestSplitPhone(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		wantCode  string
		wantLocal string
	}{
		{"ghana", "+233241234567", "+233", "241234567"},
		{"spaces and dashes", "+233 24-123 4567", "+233", "241234567"},
		{"south africa short code", "+27821234567", "+27", "821234567"},
		{"north america", "+14155550100", "+1", "4155550100"},
		{"no prefix", "0241234567", "", "0241234567"},
		{"unknown prefix", "+999123", "", "+999123"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, local := utils.SplitPhone(tt.full)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantLocal, local)
		})
	}
}

func TestJoinPhone(t *testing.T) {
	assert.Equal(t, "+233241234567", utils.JoinPhone("+233", "024 123 4567"))
	assert.Equal(t, "+233241234567", utils.JoinPhone("+233", "241234567"))
	assert.Equal(t, "+441234", utils.JoinPhone("+233", "+441234"))
	assert.Equal(t, "0241234567", utils.JoinPhone("", "0241234567"))
	assert.Equal(t, "", utils.JoinPhone("+233", ""))
}

func TestDialCodeForCountry(t *testing.T) {
	assert.Equal(t, "+233", utils.DialCodeForCountry("Ghana"))
	assert.Equal(t, "+233", utils.DialCodeForCountry("gh"))
	assert.Equal(t, "+44", utils.DialCodeForCountry(" united kingdom "))
	assert.Equal(t, "", utils.DialCodeForCountry("Atlantis"))
}
