package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
)

// UpdateHandler handles the regulatory-updates feed endpoints.
type UpdateHandler struct {
	updateService service.UpdateService
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(updateService service.UpdateService) *UpdateHandler {
	return &UpdateHandler{updateService: updateService}
}

// ListPublished handles GET /api/v1/updates
func (h *UpdateHandler) ListPublished(c *gin.Context) {
	offset, limit := parsePagination(c)
	filters := parseUpdateFilters(c)

	updates, total, err := h.updateService.ListPublished(c.Request.Context(), filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, updates, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/updates/:id
func (h *UpdateHandler) Get(c *gin.Context) {
	updateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid update id")
		return
	}

	update, err := h.updateService.GetByID(c.Request.Context(), updateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Drafts are only visible through the admin listing.
	if update.Status != domain.UpdateStatusPublished {
		HandleError(c, domain.ErrUpdateNotFound)
		return
	}

	RespondOK(c, update)
}

// ListDrafts handles GET /api/v1/admin/updates (admin only)
func (h *UpdateHandler) ListDrafts(c *gin.Context) {
	offset, limit := parsePagination(c)
	filters := parseUpdateFilters(c)

	updates, total, err := h.updateService.ListDrafts(c.Request.Context(), filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, updates, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Create handles POST /api/v1/admin/updates (admin only)
func (h *UpdateHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	update, err := h.updateService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, update)
}

// Edit handles PUT /api/v1/admin/updates/:id (admin only)
func (h *UpdateHandler) Edit(c *gin.Context) {
	updateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid update id")
		return
	}

	var input service.EditUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	update, err := h.updateService.Edit(c.Request.Context(), updateID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, update)
}

// Publish handles POST /api/v1/admin/updates/:id/publish (admin only)
func (h *UpdateHandler) Publish(c *gin.Context) {
	updateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid update id")
		return
	}

	update, err := h.updateService.Publish(c.Request.Context(), updateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, update)
}

// Delete handles DELETE /api/v1/admin/updates/:id (admin only)
func (h *UpdateHandler) Delete(c *gin.Context) {
	updateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid update id")
		return
	}

	if err := h.updateService.Delete(c.Request.Context(), updateID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "update deleted"})
}

// parseUpdateFilters extracts feed filters from query params.
func parseUpdateFilters(c *gin.Context) domain.UpdateFilters {
	return domain.UpdateFilters{
		Category:      domain.UpdateCategory(c.Query("category")),
		FinancialYear: c.Query("financial_year"),
	}
}
