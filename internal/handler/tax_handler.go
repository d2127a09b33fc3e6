package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
)

// TaxHandler handles tax calculation and schedule endpoints.
type TaxHandler struct {
	taxService service.TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// Calculate handles POST /api/v1/tax/calculate
// The result is saved as the user's snapshot for that financial year.
func (h *TaxHandler) Calculate(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CalculateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.taxService.Calculate(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Compare handles POST /api/v1/tax/compare
func (h *TaxHandler) Compare(c *gin.Context) {
	var input service.CalculateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comparison, err := h.taxService.Compare(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comparison)
}

// Suggest handles POST /api/v1/tax/suggest
func (h *TaxHandler) Suggest(c *gin.Context) {
	var input service.CalculateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	suggestions, err := h.taxService.Suggest(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, suggestions)
}

// Reconcile handles POST /api/v1/tax/reconcile
func (h *TaxHandler) Reconcile(c *gin.Context) {
	var input service.ReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	parts, err := h.taxService.Reconcile(input.Parts, input.ExpectedTotal)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"parts": parts})
}

// ListYears handles GET /api/v1/tax/schedules
func (h *TaxHandler) ListYears(c *gin.Context) {
	RespondOK(c, gin.H{"years": h.taxService.Years()})
}

// GetSchedule handles GET /api/v1/tax/schedules/:year/:regime
func (h *TaxHandler) GetSchedule(c *gin.Context) {
	year := c.Param("year")
	regime := domain.Regime(c.Param("regime"))

	info, err := h.taxService.GetSchedule(year, regime)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// History handles GET /api/v1/tax/history
func (h *TaxHandler) History(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	calcs, err := h.taxService.History(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, calcs)
}

// GetCalculation handles GET /api/v1/tax/history/:year
func (h *TaxHandler) GetCalculation(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	calc, err := h.taxService.GetCalculation(c.Request.Context(), userID, c.Param("year"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, calc)
}

// DeleteCalculation handles DELETE /api/v1/tax/history/:year
func (h *TaxHandler) DeleteCalculation(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if err := h.taxService.DeleteCalculation(c.Request.Context(), userID, c.Param("year")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "calculation deleted"})
}
