package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/clients/backend"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *backend.Client {
	return backend.NewClient(backend.Config{BaseURL: url + "/", Timeout: 2 * time.Second, RetryMax: 2})
}

func TestCreateInvoice_SendsContractAndDecodesResponse(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": "inv-1", "status": "draft", "invoiceNumber": "INV-001",
			"issueDate": "2025-03-05", "dueDate": "2025-03-12", "clientEmail": "ap@globex.test",
			"lineItems": [{"id": "li-1", "description": "Work", "quantity": 3, "rate": "150", "amount": "1"}],
			"totalAmount": "450"
		}`))
	}))
	defer srv.Close()

	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		ClientEmail:   "ap@globex.test",
		LineItems:     []dto.InvoiceLineItemRequest{{Description: "Work", Quantity: 3, Rate: decimal.NewFromInt(150)}},
	}
	inv, err := newClient(srv.URL).CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "inv-1", inv.ID)
	assert.Equal(t, domain.StatusDraft, inv.Status)
	assert.Equal(t, domain.NewDate(2025, 3, 12), inv.DueDate)
	require.Len(t, inv.LineItems, 1)
	assert.True(t, decimal.NewFromInt(450).Equal(inv.LineItems[0].Amount), "amounts are recomputed locally")

	assert.Equal(t, "INV-001", received["invoiceNumber"])
	assert.Contains(t, received, "clientName")
	assert.Nil(t, received["clientName"])
}

func TestUpdateInvoice_UsesPut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/invoices/inv-7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "inv-7", "status": "SENT"}`))
	}))
	defer srv.Close()

	inv, err := newClient(srv.URL).UpdateInvoice(context.Background(), "inv-7", dto.CreateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, inv.Status)
}

func TestFindInvoiceByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "invoice not found"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FindInvoiceByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "invoice not found", apiErr.Message)
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "clientEmail is invalid"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).CreateInvoice(context.Background(), dto.CreateInvoiceRequest{})
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "clientEmail is invalid", apiErr.Message)
	assert.EqualValues(t, 1, calls.Load())
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("try later"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newClient(srv.URL).RecordDownload(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestPlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad payload\n"))
	}))
	defer srv.Close()

	err := newClient(srv.URL).RecordDownload(context.Background(), "inv-1")
	assert.EqualError(t, err, "record download of invoice inv-1: backend returned 400: bad payload")
}
