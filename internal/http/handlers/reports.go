package handlers

import (
	"net/http"
	"strings"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
	"boardapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

type reportCreateRequest struct {
	TargetKind string `json:"target_kind"`
	TargetID   int64  `json:"target_id"`
	Reason     string `json:"reason"`
}

// POST /api/reports (authenticated)
func (h *Handler) CreateReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req reportCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.TargetKind))
	if !models.ValidReportTarget(kind) {
		RespondDomainError(c, domain.ValidationError{Field: "target_kind", Msg: "must be thread or comment"})
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "reason", Msg: "must not be empty"})
		return
	}

	// the target must be visible to the reporter
	switch kind {
	case models.ReportTargetThread:
		if _, err := h.Threads.GetByID(c.Request.Context(), req.TargetID, false); err != nil {
			RespondDomainError(c, err)
			return
		}
	case models.ReportTargetComment:
		if _, err := h.Comments.GetByID(c.Request.Context(), req.TargetID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	id, err := h.Reports.Create(c.Request.Context(), models.Report{
		ReporterID: p.ID,
		TargetKind: kind,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	report, err := h.Reports.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

type reportListQuery struct {
	query.Params
	Status      *string `form:"status"`
	Kind        *string `form:"kind"`
	ReporterID  *int64  `form:"reporter_id"`
	TargetID    *int64  `form:"target_id"`
	CreatedFrom string  `form:"created_from"`
	CreatedTo   string  `form:"created_to"`
}

func (h *Handler) bindReportFilter(c *gin.Context) (repositories.ReportFilter, bool) {
	var q reportListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return repositories.ReportFilter{}, false
	}

	from, ok := parseDateFilter(c, q.CreatedFrom, false)
	if !ok {
		return repositories.ReportFilter{}, false
	}
	to, ok := parseDateFilter(c, q.CreatedTo, true)
	if !ok {
		return repositories.ReportFilter{}, false
	}

	return repositories.ReportFilter{
		Params:      q.Params,
		Status:      q.Status,
		Kind:        q.Kind,
		ReporterID:  q.ReporterID,
		TargetID:    q.TargetID,
		CreatedFrom: from,
		CreatedTo:   to,
	}, true
}

// GET /api/reports (elevated)
func (h *Handler) ListReports(c *gin.Context) {
	f, ok := h.bindReportFilter(c)
	if !ok {
		return
	}

	page, err := h.Reports.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/me/reports — reports filed by the caller, scoped in the predicate.
func (h *Handler) ListMyReports(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, ok := h.bindReportFilter(c)
	if !ok {
		return
	}
	f.ReporterID = &p.ID

	page, err := h.Reports.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/reports/:id (elevated or the reporter)
func (h *Handler) GetReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	report, err := h.Reports.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !p.Elevated() && p.ID != report.ReporterID {
		RespondDomainError(c, domain.ForbiddenError{Msg: "not the reporter of this record"})
		return
	}
	c.JSON(http.StatusOK, report)
}

type reportCloseRequest struct {
	Note string `json:"note"`
}

// PUT /api/reports/:id/resolve (elevated)
func (h *Handler) ResolveReport(c *gin.Context) {
	h.closeReport(c, models.ReportStatusResolved)
}

// PUT /api/reports/:id/dismiss (elevated)
func (h *Handler) DismissReport(c *gin.Context) {
	h.closeReport(c, models.ReportStatusDismissed)
}

func (h *Handler) closeReport(c *gin.Context, status string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	var req reportCloseRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", err.Error())
			return
		}
	}

	if err := h.Reports.Close(c.Request.Context(), id, p.ID, status, req.Note); err != nil {
		RespondDomainError(c, err)
		return
	}

	report, err := h.Reports.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
