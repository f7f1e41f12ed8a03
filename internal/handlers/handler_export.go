package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler renders and exports the current draft.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerTemplateRoutes registers the template picker route.
func registerTemplateRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)
	rg.GET("/templates", h.listTemplates)
}

// registerExportRoutes registers rendering and export routes on the /draft group. Export and
// email run behind limit.
func registerExportRoutes(draft *gin.RouterGroup, exportService portssvc.ExportSvcFacade, limit gin.HandlerFunc) {
	h := newExportHandler(exportService)

	draft.GET("/document", h.getDocument)
	draft.GET("/preview", h.getPreview)
	draft.POST("/export", limit, h.exportPDF)
	draft.POST("/email", limit, h.emailPDF)
}

func templateParam(c *gin.Context) domain.TemplateID {
	return domain.TemplateID(strings.ToLower(strings.TrimSpace(c.Query("template"))))
}

// listTemplates godoc
// @Summary List invoice templates
// @Description Lists the available templates and flags the configured default
// @Tags templates
// @Produce  json
// @Success 200 {array} dto.TemplateResponse
// @Router /templates [get]
func (h *exportHandler) listTemplates(c *gin.Context) {
	ids, def, err := h.exportService.Templates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list templates")
		return
	}

	out := make([]dto.TemplateResponse, len(ids))
	for i, id := range ids {
		out[i] = dto.TemplateResponse{ID: id, Default: id == def}
	}
	c.JSON(http.StatusOK, out)
}

// getDocument godoc
// @Summary Render the draft as a document tree
// @Tags export
// @Produce  json
// @Param   template query string false "Template id; defaults to the draft's template"
// @Success 200 {object} render.Document
// @Failure 400 {object} map[string]string "Unknown template"
// @Router /draft/document [get]
func (h *exportHandler) getDocument(c *gin.Context) {
	doc, err := h.exportService.Document(c.Request.Context(), templateParam(c))
	if err != nil {
		respondError(c, err, "Failed to render document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// getPreview godoc
// @Summary Render the draft as HTML
// @Tags export
// @Produce  html
// @Param   template query string false "Template id; defaults to the draft's template"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} map[string]string "Unknown template"
// @Router /draft/preview [get]
func (h *exportHandler) getPreview(c *gin.Context) {
	page, err := h.exportService.Preview(c.Request.Context(), templateParam(c))
	if err != nil {
		respondError(c, err, "Failed to render preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// exportPDF godoc
// @Summary Export the draft as PDF
// @Tags export
// @Produce  application/pdf
// @Param   template query string false "Template id; defaults to the draft's template"
// @Success 200 {file} file "PDF document"
// @Failure 400 {object} map[string]string "Unknown template"
// @Failure 409 {object} map[string]string "An export is already in progress"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Export failed"
// @Router /draft/export [post]
func (h *exportHandler) exportPDF(c *gin.Context) {
	result, err := h.exportService.Export(c.Request.Context(), templateParam(c))
	if err != nil {
		respondError(c, err, "Failed to export invoice")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("PDF exported",
		slog.String("filename", result.Filename), slog.Int("pages", result.Pages))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("X-Page-Count", fmt.Sprint(result.Pages))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

// emailPDF godoc
// @Summary Email the exported PDF
// @Description Exports the draft and mails it to the email recipient, or the client email when none is set
// @Tags export
// @Produce  json
// @Param   template query string false "Template id; defaults to the draft's template"
// @Success 200 {object} dto.EmailSentResponse
// @Failure 409 {object} map[string]string "An export is already in progress"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 503 {object} map[string]string "Email is not configured"
// @Router /draft/email [post]
func (h *exportHandler) emailPDF(c *gin.Context) {
	recipient, result, err := h.exportService.Email(c.Request.Context(), templateParam(c))
	if err != nil {
		respondError(c, err, "Failed to email invoice")
		return
	}
	c.JSON(http.StatusOK, dto.EmailSentResponse{Recipient: recipient, Filename: result.Filename, Pages: result.Pages})
}
