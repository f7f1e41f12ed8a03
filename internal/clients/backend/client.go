package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/SscSPs/invoice_wizard/internal/utils/mapping"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
	maxErrorBodyBytes   = 4 << 10
)

// Config configures the backend of record client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Is maps 404 to apperrors.ErrNotFound and 409 to apperrors.ErrDuplicate.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == apperrors.ErrNotFound
	case http.StatusConflict:
		return target == apperrors.ErrDuplicate
	}
	return false
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client submits invoices to the backend of record over HTTP. Transport failures and 5xx
// answers are retried; 4xx answers are returned immediately.
type Client struct {
	client  *http.Client
	baseURL string
}

var _ portsrepo.InvoiceRepositoryFacade = (*Client)(nil)

// NewClient builds a retrying client.
func NewClient(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = defaultRetryWaitMin
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = nil
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		client:  retryClient.StandardClient(),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// FindInvoiceByID fetches a persisted invoice for editing.
func (c *Client) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var resp dto.InvoiceResponse
	if err := c.do(ctx, http.MethodGet, c.invoicePath(invoiceID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(resp)
	return &inv, nil
}

// CreateInvoice submits a new invoice.
func (c *Client) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	var resp dto.InvoiceResponse
	if err := c.do(ctx, http.MethodPost, "/invoices", req, &resp); err != nil {
		return nil, fmt.Errorf("create invoice %s: %w", req.InvoiceNumber, err)
	}
	inv := mapping.ToDomainInvoice(resp)
	return &inv, nil
}

// UpdateInvoice replaces an existing invoice.
func (c *Client) UpdateInvoice(ctx context.Context, invoiceID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	var resp dto.InvoiceResponse
	if err := c.do(ctx, http.MethodPut, c.invoicePath(invoiceID), req, &resp); err != nil {
		return nil, fmt.Errorf("update invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(resp)
	return &inv, nil
}

// RecordDownload increments the download counter of an invoice.
func (c *Client) RecordDownload(ctx context.Context, invoiceID string) error {
	if err := c.do(ctx, http.MethodPost, c.invoicePath(invoiceID)+"/download", nil, nil); err != nil {
		return fmt.Errorf("record download of invoice %s: %w", invoiceID, err)
	}
	return nil
}

func (c *Client) invoicePath(invoiceID string) string {
	return "/invoices/" + url.PathEscape(invoiceID)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID, ok := middleware.GetRequestID(ctx); ok {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	middleware.GetLoggerFromCtx(ctx).Debug("Backend call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		apiErr.Message = parsed.Error
		if apiErr.Message == "" {
			apiErr.Message = parsed.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
