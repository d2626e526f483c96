package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facturo/internal/service"
)

// SeriesHandler handles numbering series endpoints.
type SeriesHandler struct {
	seriesService service.SeriesService
}

// NewSeriesHandler creates a new SeriesHandler.
func NewSeriesHandler(seriesService service.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesService: seriesService}
}

// Create handles POST /api/v1/series
func (h *SeriesHandler) Create(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req service.CreateSeriesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "prefix and name are required")
		return
	}

	series, err := h.seriesService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, series)
}

// List handles GET /api/v1/series
func (h *SeriesHandler) List(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	series, err := h.seriesService.List(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, series)
}

// GetByID handles GET /api/v1/series/:id
func (h *SeriesHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid series ID")
		return
	}

	series, err := h.seriesService.GetByID(c.Request.Context(), tenantID, seriesID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, series)
}

// Update handles PUT /api/v1/series/:id
func (h *SeriesHandler) Update(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid series ID")
		return
	}

	var req service.UpdateSeriesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	series, err := h.seriesService.Update(c.Request.Context(), tenantID, seriesID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, series)
}

// ToggleActive handles POST /api/v1/series/:id/toggle
func (h *SeriesHandler) ToggleActive(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid series ID")
		return
	}

	series, err := h.seriesService.ToggleActive(c.Request.Context(), tenantID, seriesID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, series)
}

// SetDefault handles POST /api/v1/series/:id/default
func (h *SeriesHandler) SetDefault(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid series ID")
		return
	}

	if err := h.seriesService.SetDefault(c.Request.Context(), tenantID, seriesID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"default": true})
}

// Delete handles DELETE /api/v1/series/:id
func (h *SeriesHandler) Delete(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid series ID")
		return
	}

	if err := h.seriesService.Delete(c.Request.Context(), tenantID, seriesID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
