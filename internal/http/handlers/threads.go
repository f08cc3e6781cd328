package handlers

import (
	"net/http"
	"strings"

	"boardapi/internal/authz"
	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
	"boardapi/internal/repositories"
	"boardapi/internal/utils"

	"github.com/gin-gonic/gin"
)

type threadListQuery struct {
	query.Params
	CategoryID  *int64  `form:"category_id"`
	AuthorID    *int64  `form:"author_id"`
	Status      *string `form:"status"`
	Pinned      *bool   `form:"pinned"`
	Q           *string `form:"q"`
	CreatedFrom string  `form:"created_from"`
	CreatedTo   string  `form:"created_to"`
	Deleted     *bool   `form:"deleted"`
}

func (h *Handler) bindThreadFilter(c *gin.Context, audit bool) (repositories.ThreadFilter, bool) {
	var q threadListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return repositories.ThreadFilter{}, false
	}

	from, ok := parseDateFilter(c, q.CreatedFrom, false)
	if !ok {
		return repositories.ThreadFilter{}, false
	}
	to, ok := parseDateFilter(c, q.CreatedTo, true)
	if !ok {
		return repositories.ThreadFilter{}, false
	}

	f := repositories.ThreadFilter{
		Params:      q.Params,
		CategoryID:  q.CategoryID,
		AuthorID:    q.AuthorID,
		Status:      q.Status,
		Pinned:      q.Pinned,
		Q:           q.Q,
		CreatedFrom: from,
		CreatedTo:   to,
	}
	if audit {
		f.IncludeDeleted = true
		f.Deleted = q.Deleted
	}
	return f, true
}

// GET /api/threads (public; live rows only)
func (h *Handler) ListThreads(c *gin.Context) {
	f, ok := h.bindThreadFilter(c, false)
	if !ok {
		return
	}

	page, err := h.Threads.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/admin/threads (elevated; audit view including soft-deleted rows)
func (h *Handler) ListThreadsAdmin(c *gin.Context) {
	f, ok := h.bindThreadFilter(c, true)
	if !ok {
		return
	}

	page, err := h.Threads.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/me/threads — the caller's own threads, scoped in the predicate so
// the records count never covers other authors.
func (h *Handler) ListMyThreads(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, ok := h.bindThreadFilter(c, false)
	if !ok {
		return
	}
	f.AuthorID = &p.ID

	page, err := h.Threads.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/threads/:id (public; soft-deleted threads are invisible)
func (h *Handler) GetThread(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	thread, err := h.Threads.GetByID(c.Request.Context(), id, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

type threadCreateRequest struct {
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// POST /api/threads (authenticated)
func (h *Handler) CreateThread(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req threadCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "title", Msg: "must not be empty"})
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "body", Msg: "must not be empty"})
		return
	}

	// advisory; the FK constraint remains the authority
	if _, err := h.Categories.GetByID(c.Request.Context(), req.CategoryID); err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := h.Threads.Create(c.Request.Context(), models.Thread{
		CategoryID: req.CategoryID,
		AuthorID:   p.ID,
		Title:      utils.NormalizeSpace(req.Title),
		Body:       req.Body,
		Status:     models.ThreadStatusOpen,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	thread, err := h.Threads.GetByID(c.Request.Context(), id, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

type threadUpdateRequest struct {
	Title      *string `json:"title"`
	Body       *string `json:"body"`
	CategoryID *int64  `json:"category_id"`
	Status     *string `json:"status"`
	Pinned     *bool   `json:"pinned"`
}

// PUT /api/threads/:id (owner or elevated; pin/status changes elevated-only)
func (h *Handler) UpdateThread(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	var req threadUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	thread, err := h.Threads.GetByID(c.Request.Context(), id, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := authz.RequireOwnerOrElevated(p, thread.AuthorID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.Status != nil || req.Pinned != nil {
		if err := authz.RequireElevated(p); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.Status != nil && !models.ValidThreadStatus(*req.Status) {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "unknown status"})
		return
	}
	if req.CategoryID != nil {
		if _, err := h.Categories.GetByID(c.Request.Context(), *req.CategoryID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	err = h.Threads.Update(c.Request.Context(), id, repositories.ThreadPatch{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		Pinned:     req.Pinned,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	thread, err = h.Threads.GetByID(c.Request.Context(), id, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// DELETE /api/threads/:id (owner or elevated; soft)
func (h *Handler) DeleteThread(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	thread, err := h.Threads.GetByID(c.Request.Context(), id, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := authz.RequireOwnerOrElevated(p, thread.AuthorID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := h.Threads.SoftDelete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "thread deleted"})
}
