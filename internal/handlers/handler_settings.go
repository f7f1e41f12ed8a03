package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests related to user settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers routes related to settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
	}
}

// getSettings godoc
// @Summary Get settings
// @Description Retrieves the stored settings, or the defaults
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} map[string]string "Failed to load settings"
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update settings
// @Description Applies a partial settings change. Omitted fields are left untouched.
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Settings to change"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} map[string]string "Failed to update settings"
// @Router /settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req, "UpdateSettings") {
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Settings updated")
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
