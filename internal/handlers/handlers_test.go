package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/core/services"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/export"
	"github.com/SscSPs/invoice_wizard/internal/handlers"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/SscSPs/invoice_wizard/internal/platform/config"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/SscSPs/invoice_wizard/internal/repositories/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type fakeExporter struct{}

func (fakeExporter) Run(_ context.Context, doc render.Document) (export.Result, error) {
	return export.Result{PDF: []byte("%PDF-1.3"), Pages: 1, Filename: export.Filename(doc.Number)}, nil
}

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	slots := storage.NewMemoryStore()
	settings := services.NewSettingsService(slots)
	drafts := services.NewDraftService(slots, settings)
	container := &portssvc.ServiceContainer{
		Draft:    drafts,
		Settings: settings,
		Export:   services.NewExportService(drafts, settings, services.WithExporter(fakeExporter{})),
		Logo:     services.NewLogoService(drafts, nil),
	}

	cfg := &config.Config{IsProduction: true, ExportRateLimit: "2-M"}
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			suite.Require().NoError(err)
			raw = string(b)
		}
		reader = strings.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// makeSubmittable fills in the fields submission requires.
func (suite *HandlersTestSuite) makeSubmittable() {
	w := suite.do(http.MethodPut, "/api/v1/draft/client", map[string]string{"name": "Globex", "email": "ap@globex.test"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/draft/items", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var added dto.LineItemResponse
	suite.decode(w, &added)

	w = suite.do(http.MethodPatch, "/api/v1/draft/items/"+added.Item.ID, `{"description": "Consulting", "quantity": "3", "rate": 150}`)
	suite.Require().Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (suite *HandlersTestSuite) TestGetDraft() {
	w := suite.do(http.MethodGet, "/api/v1/draft", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.DraftResponse
	suite.decode(w, &resp)
	suite.Equal("INV-001", resp.Draft.Meta.InvoiceNumber)
	suite.Equal("USD", resp.Draft.Currency)
	suite.True(resp.Totals.Total.IsZero())
}

func (suite *HandlersTestSuite) TestLineItemsAndTotals() {
	suite.makeSubmittable()

	w := suite.do(http.MethodPut, "/api/v1/draft/adjustments", `{"taxRate": "10", "discount": 50}`)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/draft/totals", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var totals map[string]string
	suite.decode(w, &totals)
	suite.Equal("450", totals["subtotal"])
	suite.Equal("400", totals["taxableBase"])
	suite.Equal("40", totals["tax"])
	suite.Equal("440", totals["total"])
}

func (suite *HandlersTestSuite) TestAdjustmentsOutOfRange() {
	for _, body := range []string{`{"discount": -1}`, `{"taxRate": "-1"}`, `{"taxRate": 101}`, `{"taxRate": "250"}`} {
		w := suite.do(http.MethodPut, "/api/v1/draft/adjustments", body)
		suite.Equal(http.StatusUnprocessableEntity, w.Code, body)
	}

	w := suite.do(http.MethodPut, "/api/v1/draft/adjustments", `{"discount": "-50", "taxRate": "-10"}`)
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	var verr dto.ValidationErrorResponse
	suite.decode(w, &verr)
	suite.Contains(verr.Fields, "discount")
	suite.Contains(verr.Fields, "taxRate")
}

func (suite *HandlersTestSuite) TestRemoveLineItem() {
	w := suite.do(http.MethodPost, "/api/v1/draft/items", nil)
	var added dto.LineItemResponse
	suite.decode(w, &added)

	w = suite.do(http.MethodDelete, "/api/v1/draft/items/unknown", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DraftResponse
	suite.decode(w, &resp)
	suite.Len(resp.Draft.LineItems, 1)

	w = suite.do(http.MethodDelete, "/api/v1/draft/items/"+added.Item.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.Empty(resp.Draft.LineItems)
}

func (suite *HandlersTestSuite) TestUpdateUnknownLineItem() {
	w := suite.do(http.MethodPatch, "/api/v1/draft/items/missing", `{"description": "x"}`)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestMalformedJSON() {
	w := suite.do(http.MethodPut, "/api/v1/draft/company", `{"name": `)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateDesign() {
	w := suite.do(http.MethodPut, "/api/v1/draft/design", map[string]string{"primaryColor": "blue"})
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	var verr dto.ValidationErrorResponse
	suite.decode(w, &verr)
	suite.Contains(verr.Fields, "design.primaryColor")

	w = suite.do(http.MethodPut, "/api/v1/draft/design", map[string]string{"templateId": "retro"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/draft/design", map[string]string{"templateId": "classic", "primaryColor": "#ABCDEF"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.DraftResponse
	suite.decode(w, &resp)
	suite.Equal(domain.TemplateClassic, resp.Draft.Design.TemplateID)
	suite.Equal("#abcdef", resp.Draft.Design.PrimaryColor)
}

func (suite *HandlersTestSuite) TestValidate() {
	w := suite.do(http.MethodPost, "/api/v1/draft/validate", nil)
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	var verr dto.ValidationErrorResponse
	suite.decode(w, &verr)
	suite.Contains(verr.Fields, "client.email")

	suite.makeSubmittable()
	w = suite.do(http.MethodPost, "/api/v1/draft/validate", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestSubmitWithoutBackend() {
	suite.makeSubmittable()

	w := suite.do(http.MethodPost, "/api/v1/draft/submit", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	// the draft survives a failed submission
	w = suite.do(http.MethodGet, "/api/v1/draft", nil)
	var resp dto.DraftResponse
	suite.decode(w, &resp)
	suite.Len(resp.Draft.LineItems, 1)
}

func (suite *HandlersTestSuite) TestLoadWithoutBackend() {
	w := suite.do(http.MethodPost, "/api/v1/draft/load/inv-1", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlersTestSuite) TestReset() {
	suite.makeSubmittable()

	w := suite.do(http.MethodPost, "/api/v1/draft/reset", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.DraftResponse
	suite.decode(w, &resp)
	suite.Empty(resp.Draft.LineItems)
	suite.Empty(resp.Draft.Client.Email)
}

func (suite *HandlersTestSuite) TestTemplates() {
	w := suite.do(http.MethodGet, "/api/v1/templates", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var templates []dto.TemplateResponse
	suite.decode(w, &templates)
	suite.Require().Len(templates, 5)
	suite.Equal(domain.TemplateModern, templates[0].ID)
	suite.True(templates[0].Default)
	suite.False(templates[1].Default)
}

func (suite *HandlersTestSuite) TestDocumentAndPreview() {
	suite.makeSubmittable()

	w := suite.do(http.MethodGet, "/api/v1/draft/document?template=Enterprise", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var doc render.Document
	suite.decode(w, &doc)
	suite.Equal(domain.TemplateEnterprise, doc.Template)

	w = suite.do(http.MethodGet, "/api/v1/draft/document?template=retro", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/draft/preview", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/html")
	suite.Contains(w.Body.String(), "$450.00")
}

func (suite *HandlersTestSuite) TestExportPDF() {
	w := suite.do(http.MethodPost, "/api/v1/draft/export", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Equal(`attachment; filename="invoice-INV-001.pdf"`, w.Header().Get("Content-Disposition"))
	suite.Equal("1", w.Header().Get("X-Page-Count"))
	suite.Equal("%PDF-1.3", w.Body.String())
}

func (suite *HandlersTestSuite) TestExportRateLimited() {
	for i := 0; i < 2; i++ {
		w := suite.do(http.MethodPost, "/api/v1/draft/export", nil)
		suite.Require().Equal(http.StatusOK, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/draft/export", nil)
	suite.Equal(http.StatusTooManyRequests, w.Code)

	// preview is not limited
	w = suite.do(http.MethodGet, "/api/v1/draft/preview", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestEmailWithoutMailer() {
	w := suite.do(http.MethodPost, "/api/v1/draft/email", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlersTestSuite) TestUploadLogo() {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("logo", "logo.png")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	suite.Require().NoError(err)
	suite.Require().NoError(form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/draft/logo", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LogoResponse
	suite.decode(w, &resp)
	suite.True(resp.Fallback)
	suite.True(strings.HasPrefix(resp.Logo, "data:image/png;base64,"))
	suite.Equal(resp.Logo, resp.Draft.Draft.Company.Logo)
}

func (suite *HandlersTestSuite) TestUploadLogoRequiresFile() {
	w := suite.do(http.MethodPost, "/api/v1/draft/logo", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestSetLogo() {
	w := suite.do(http.MethodPut, "/api/v1/draft/logo", dto.SetLogoRequest{Logo: "https://cdn.test/logo.png"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.DraftResponse
	suite.decode(w, &resp)
	suite.Equal("https://cdn.test/logo.png", resp.Draft.Company.Logo)
}

func (suite *HandlersTestSuite) TestSettings() {
	w := suite.do(http.MethodGet, "/api/v1/settings", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var settings dto.SettingsResponse
	suite.decode(w, &settings)
	suite.Equal("INV-001", settings.NextInvoiceNumberFormatted)

	w = suite.do(http.MethodPut, "/api/v1/settings", map[string]any{"invoicePrefix": "ACME-", "nextInvoiceNumber": 7})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &settings)
	suite.Equal("ACME-007", settings.NextInvoiceNumberFormatted)

	w = suite.do(http.MethodPut, "/api/v1/settings", map[string]any{"defaultColor": "red"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestReferenceData() {
	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var currencies dto.ListCurrenciesResponse
	suite.decode(w, &currencies)
	suite.Len(currencies.Currencies, 9)

	w = suite.do(http.MethodGet, "/api/v1/countries", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"dialCode":"+233"`)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
