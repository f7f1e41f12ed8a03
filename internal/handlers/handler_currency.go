package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/gin-gonic/gin"
)

// registerReferenceRoutes registers the static pickers used by the wizard.
func registerReferenceRoutes(rg *gin.RouterGroup) {
	rg.GET("/currencies", listCurrencies)
	rg.GET("/countries", listCountries)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Retrieves the currencies invoices can be issued in
// @Tags reference
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Router /currencies [get]
func listCurrencies(c *gin.Context) {
	currencies := utils.SupportedCurrencies()
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Currencies listed", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(currencies))
}

// listCountries godoc
// @Summary List countries with dial codes
// @Tags reference
// @Produce  json
// @Success 200 {array} utils.Country
// @Router /countries [get]
func listCountries(c *gin.Context) {
	c.JSON(http.StatusOK, utils.Countries())
}
