package handlers

import (
	"github.com/gin-gonic/gin"

	"defter/internal/domain/reports"
)

// ReportsHandler serves aggregated dashboard figures.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Summary handles GET /dashboard/summary.
func (h *ReportsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
