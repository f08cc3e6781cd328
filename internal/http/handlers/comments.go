package handlers

import (
	"net/http"
	"strings"

	"boardapi/internal/authz"
	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"

	"github.com/gin-gonic/gin"
)

// GET /api/threads/:id/comments (public)
func (h *Handler) ListComments(c *gin.Context) {
	threadID, ok := pathID(c)
	if !ok {
		return
	}

	var params query.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return
	}

	// listing comments of an invisible thread must 404, not return empty
	if _, err := h.Threads.GetByID(c.Request.Context(), threadID, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	page, err := h.Comments.ListByThread(c.Request.Context(), threadID, params)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type commentCreateRequest struct {
	Body     string `json:"body"`
	ParentID *int64 `json:"parent_id"`
}

// POST /api/threads/:id/comments (authenticated; thread must be open)
func (h *Handler) CreateComment(c *gin.Context) {
	threadID, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	var req commentCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "body", Msg: "must not be empty"})
		return
	}

	thread, err := h.Threads.GetByID(c.Request.Context(), threadID, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if thread.Status != models.ThreadStatusOpen {
		RespondDomainError(c, domain.ConflictError{Resource: "thread", Msg: "closed for comments"})
		return
	}

	if req.ParentID != nil {
		parent, err := h.Comments.GetByID(c.Request.Context(), *req.ParentID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if parent.ThreadID != threadID {
			RespondDomainError(c, domain.ValidationError{Field: "parent_id", Msg: "belongs to a different thread"})
			return
		}
		if parent.ParentID != nil {
			RespondDomainError(c, domain.ValidationError{Field: "parent_id", Msg: "replies only go one level deep"})
			return
		}
	}

	id, err := h.Comments.Create(c.Request.Context(), models.Comment{
		ThreadID: threadID,
		AuthorID: p.ID,
		ParentID: req.ParentID,
		Body:     req.Body,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	comment, err := h.Comments.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

type commentUpdateRequest struct {
	Body string `json:"body"`
}

// PUT /api/comments/:id (owner or elevated)
func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	var req commentUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	comment, err := h.Comments.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := authz.RequireOwnerOrElevated(p, comment.AuthorID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := h.Comments.UpdateBody(c.Request.Context(), id, req.Body); err != nil {
		RespondDomainError(c, err)
		return
	}

	comment, err = h.Comments.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /api/comments/:id (owner or elevated; soft)
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	comment, err := h.Comments.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := authz.RequireOwnerOrElevated(p, comment.AuthorID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := h.Comments.SoftDelete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
