package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/threads/:id/transcript (public) — thread plus comments as PDF.
func (h *Handler) ExportThreadTranscript(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	data, filename, err := h.Exports.ThreadTranscript(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/admin/reports/export (elevated) — report queue as PDF, optionally
// narrowed by ?status=.
func (h *Handler) ExportModerationSummary(c *gin.Context) {
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	data, filename, err := h.Exports.ModerationSummary(c.Request.Context(), status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
