package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDraft = `{
	"company": {"name": "Acme Ltd"},
	"client": {"name": "Globex", "email": "ap@globex.test"},
	"meta": {"invoiceNumber": "INV-042", "issueDate": "2025-03-05", "dueDate": "2025-03-12"},
	"lineItems": [{"id": "a", "description": "Consulting", "quantity": 3, "rate": "150"}],
	"taxRate": "10",
	"discount": "50",
	"currency": "GHS",
	"design": {"templateId": "classic"}
}`

func writeDraft(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDraft), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"invoicectl"}, args...))
	return out.String(), err
}

func TestTotalsCommand(t *testing.T) {
	out, err := run(t, "totals", "--draft", writeDraft(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Subtotal:  GH₵450.00")
	assert.Contains(t, out, "Discount:  -GH₵50.00")
	assert.Contains(t, out, "Tax (10%): GH₵40.00")
	assert.Contains(t, out, "Total:     GH₵440.00")
	assert.Contains(t, out, "Four Hundred and Forty")
}

func TestRenderCommand_JSON(t *testing.T) {
	out, err := run(t, "render", "--draft", writeDraft(t), "--format", "json", "--template", "Corporate")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "corporate", doc["template"])
	assert.Equal(t, "INV-042", doc["number"])
}

func TestRenderCommand_HTMLUsesDraftTemplate(t *testing.T) {
	out, err := run(t, "render", "--draft", writeDraft(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "Acme Ltd")
}

func TestRenderCommand_UnknownTemplate(t *testing.T) {
	_, err := run(t, "render", "--draft", writeDraft(t), "--template", "retro")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.pdf")
	_, err := run(t, "export", "--draft", writeDraft(t), "--out", outPath)
	require.NoError(t, err)

	pdf, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestMissingDraftFile(t *testing.T) {
	_, err := run(t, "totals", "--draft", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read draft")
}
