package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/core/services"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// draftHandler handles the wizard's draft editing requests.
type draftHandler struct {
	draftService portssvc.DraftSvcFacade
	logoService  portssvc.LogoSvc
}

func newDraftHandler(ds portssvc.DraftSvcFacade, ls portssvc.LogoSvc) *draftHandler {
	return &draftHandler{draftService: ds, logoService: ls}
}

// registerDraftRoutes registers the draft routes on the /draft group.
func registerDraftRoutes(draft *gin.RouterGroup, draftService portssvc.DraftSvcFacade, logoService portssvc.LogoSvc) {
	h := newDraftHandler(draftService, logoService)

	draft.GET("", h.getDraft)
	draft.GET("/totals", h.getTotals)

	draft.PUT("/company", h.updateCompany)
	draft.PUT("/client", h.updateClient)
	draft.PUT("/meta", h.updateMeta)
	draft.PUT("/adjustments", h.updateAdjustments)
	draft.PUT("/payment", h.updatePayment)
	draft.PUT("/design", h.updateDesign)
	draft.PUT("/email", h.updateEmail)

	items := draft.Group("/items")
	{
		items.POST("", h.addLineItem)
		items.PATCH("/:itemID", h.updateLineItem)
		items.DELETE("/:itemID", h.removeLineItem)
	}

	draft.POST("/logo", h.uploadLogo)
	draft.PUT("/logo", h.setLogo)

	draft.POST("/validate", h.validate)
	draft.POST("/submit", h.submit)
	draft.POST("/reset", h.reset)
	draft.POST("/load/:invoiceID", h.loadInvoice)
}

// getDraft godoc
// @Summary Get the current draft
// @Description Returns the in-progress draft with its derived totals
// @Tags draft
// @Produce  json
// @Success 200 {object} dto.DraftResponse
// @Failure 500 {object} map[string]string "Failed to load draft"
// @Router /draft [get]
func (h *draftHandler) getDraft(c *gin.Context) {
	d, err := h.draftService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(d))
}

// getTotals godoc
// @Summary Get draft totals
// @Tags draft
// @Produce  json
// @Success 200 {object} accounting.Totals
// @Failure 500 {object} map[string]string "Failed to compute totals"
// @Router /draft/totals [get]
func (h *draftHandler) getTotals(c *gin.Context) {
	totals, err := h.draftService.Totals(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// updateSection binds a section of the draft and applies it with update.
func updateSection[T any](c *gin.Context, op string, update func(*gin.Context, T) (domain.Draft, error)) {
	var req T
	if !bindJSON(c, &req, op) {
		return
	}
	d, err := update(c, req)
	if err != nil {
		respondError(c, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(d))
}

// updateCompany godoc
// @Summary Update the issuer
// @Description Replaces the company block. An empty logo keeps the current one; an empty phone code is derived from the country.
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   company body domain.CompanyInfo true "Company details"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /draft/company [put]
func (h *draftHandler) updateCompany(c *gin.Context) {
	updateSection(c, "UpdateCompany", func(c *gin.Context, req domain.CompanyInfo) (domain.Draft, error) {
		return h.draftService.UpdateCompany(c.Request.Context(), req)
	})
}

// updateClient godoc
// @Summary Update the bill-to party
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   client body domain.ClientInfo true "Client details"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /draft/client [put]
func (h *draftHandler) updateClient(c *gin.Context) {
	updateSection(c, "UpdateClient", func(c *gin.Context, req domain.ClientInfo) (domain.Draft, error) {
		return h.draftService.UpdateClient(c.Request.Context(), req)
	})
}

// updateMeta godoc
// @Summary Update invoice number and dates
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   meta body domain.InvoiceMeta true "Number and dates (YYYY-MM-DD)"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /draft/meta [put]
func (h *draftHandler) updateMeta(c *gin.Context) {
	updateSection(c, "UpdateMeta", func(c *gin.Context, req domain.InvoiceMeta) (domain.Draft, error) {
		return h.draftService.UpdateMeta(c.Request.Context(), req)
	})
}

// updateAdjustments godoc
// @Summary Update tax rate, discount, currency and notes
// @Description Omitted fields are left untouched. Numbers may be sent as JSON numbers or strings; invalid values become 0.
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   adjustments body dto.UpdateAdjustmentsRequest true "Adjustments"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} dto.ValidationErrorResponse "Discount below 0 or tax rate outside 0-100"
// @Router /draft/adjustments [put]
func (h *draftHandler) updateAdjustments(c *gin.Context) {
	updateSection(c, "UpdateAdjustments", func(c *gin.Context, req dto.UpdateAdjustmentsRequest) (domain.Draft, error) {
		return h.draftService.UpdateAdjustments(c.Request.Context(), req)
	})
}

// updatePayment godoc
// @Summary Update payment details
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   payment body domain.PaymentInfo true "Payment method and details"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /draft/payment [put]
func (h *draftHandler) updatePayment(c *gin.Context) {
	updateSection(c, "UpdatePayment", func(c *gin.Context, req domain.PaymentInfo) (domain.Draft, error) {
		return h.draftService.UpdatePayment(c.Request.Context(), req)
	})
}

// updateDesign godoc
// @Summary Update template, color and font
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   design body domain.Design true "Design choices"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Unknown template"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /draft/design [put]
func (h *draftHandler) updateDesign(c *gin.Context) {
	updateSection(c, "UpdateDesign", func(c *gin.Context, req domain.Design) (domain.Draft, error) {
		return h.draftService.UpdateDesign(c.Request.Context(), req)
	})
}

// updateEmail godoc
// @Summary Update the email that accompanies the exported invoice
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   email body domain.EmailFields true "Recipient, subject and body"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /draft/email [put]
func (h *draftHandler) updateEmail(c *gin.Context) {
	updateSection(c, "UpdateEmail", func(c *gin.Context, req domain.EmailFields) (domain.Draft, error) {
		return h.draftService.UpdateEmail(c.Request.Context(), req)
	})
}

// addLineItem godoc
// @Summary Add a line item
// @Description Appends a blank item with quantity 1 and rate 0
// @Tags draft
// @Produce  json
// @Success 201 {object} dto.LineItemResponse
// @Router /draft/items [post]
func (h *draftHandler) addLineItem(c *gin.Context) {
	d, item, err := h.draftService.AddLineItem(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to add line item")
		return
	}
	c.JSON(http.StatusCreated, dto.LineItemResponse{Item: item, Draft: dto.ToDraftResponse(d)})
}

// updateLineItem godoc
// @Summary Update a line item
// @Description Merges the given fields into the item and recomputes its amount
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Line item ID"
// @Param   item body domain.LineItemPatch true "Fields to change"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} map[string]string "Line item not found"
// @Router /draft/items/{itemID} [patch]
func (h *draftHandler) updateLineItem(c *gin.Context) {
	itemID := c.Param("itemID")
	var patch domain.LineItemPatch
	if !bindJSON(c, &patch, "UpdateLineItem") {
		return
	}

	d, err := h.draftService.UpdateLineItem(c.Request.Context(), itemID, patch)
	if err != nil {
		respondError(c, err, "Failed to update line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(d))
}

// removeLineItem godoc
// @Summary Remove a line item
// @Description Unknown ids leave the draft unchanged
// @Tags draft
// @Produce  json
// @Param   itemID path string true "Line item ID"
// @Success 200 {object} dto.DraftResponse
// @Router /draft/items/{itemID} [delete]
func (h *draftHandler) removeLineItem(c *gin.Context) {
	d, err := h.draftService.RemoveLineItem(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to remove line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(d))
}

// uploadLogo godoc
// @Summary Upload a company logo
// @Description Uploads the image to object storage; when that is unavailable the logo is stored inline as a data URI
// @Tags draft
// @Accept  multipart/form-data
// @Produce  json
// @Param   logo formData file true "Logo image (max 2 MiB)"
// @Success 200 {object} dto.LogoResponse
// @Failure 400 {object} map[string]string "Missing or invalid file"
// @Router /draft/logo [post]
func (h *draftHandler) uploadLogo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		logger.Warn("Logo file missing from form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A logo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Failed to read logo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxLogoBytes+1))
	if err != nil {
		respondError(c, err, "Failed to read logo")
		return
	}

	d, ref, fallback, err := h.logoService.UploadLogo(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err, "Failed to store logo")
		return
	}

	logger.Info("Logo stored", slog.Bool("fallback", fallback), slog.Int("bytes", len(data)))
	c.JSON(http.StatusOK, dto.LogoResponse{Logo: ref, Fallback: fallback, Draft: dto.ToDraftResponse(d)})
}

// setLogo godoc
// @Summary Set or clear the logo reference
// @Description Stores an already hosted logo URL. An empty value removes the logo.
// @Tags draft
// @Accept  json
// @Produce  json
// @Param   logo body dto.SetLogoRequest true "Logo reference"
// @Success 200 {object} dto.DraftResponse
// @Router /draft/logo [put]
func (h *draftHandler) setLogo(c *gin.Context) {
	updateSection(c, "SetLogo", func(c *gin.Context, req dto.SetLogoRequest) (domain.Draft, error) {
		return h.draftService.SetLogo(c.Request.Context(), req.Logo)
	})
}

// validate godoc
// @Summary Validate the draft for submission
// @Tags draft
// @Produce  json
// @Success 204 "Draft is valid"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /draft/validate [post]
func (h *draftHandler) validate(c *gin.Context) {
	if err := h.draftService.Validate(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to validate draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// submit godoc
// @Summary Submit the draft
// @Description Validates the draft and sends it to the backend of record. On success a fresh draft replaces it.
// @Tags draft
// @Produce  json
// @Success 201 {object} dto.SubmitResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 502 {object} map[string]string "Backend rejected the invoice"
// @Failure 503 {object} map[string]string "No backend configured"
// @Router /draft/submit [post]
func (h *draftHandler) submit(c *gin.Context) {
	inv, d, err := h.draftService.Submit(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to submit invoice")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice submitted", slog.String("invoice_id", inv.ID))
	c.JSON(http.StatusCreated, dto.SubmitResponse{Invoice: *inv, Draft: dto.ToDraftResponse(d)})
}

// reset godoc
// @Summary Discard the draft
// @Tags draft
// @Produce  json
// @Success 200 {object} dto.DraftResponse
// @Router /draft/reset [post]
func (h *draftHandler) reset(c *gin.Context) {
	d, err := h.draftService.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to reset draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(d))
}

// loadInvoice godoc
// @Summary Open a persisted invoice for editing
// @Tags draft
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 503 {object} map[string]string "No backend configured"
// @Router /draft/load/{invoiceID} [post]
func (h *draftHandler) loadInvoice(c *gin.Context) {
	d, err := h.draftService.LoadInvoice(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to load invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(d))
}
