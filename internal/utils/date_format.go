package utils

import "github.com/SscSPs/invoice_wizard/internal/core/domain"

// DocumentDateLayout is the day/short-month/year layout printed on invoices.
const DocumentDateLayout = "02 Jan 2006"

// FormatDocumentDate formats a date for an invoice document; unset dates render as "-".
func FormatDocumentDate(d domain.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(DocumentDateLayout)
}
