package handlers

import (
	"net/http"

	"boardapi/internal/authz"
	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
	"boardapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

type userListQuery struct {
	query.Params
	Q           *string `form:"q"`
	Role        *string `form:"role"`
	Status      *string `form:"status"`
	CreatedFrom string  `form:"created_from"`
	CreatedTo   string  `form:"created_to"`
}

// GET /api/users (admin)
func (h *Handler) ListUsers(c *gin.Context) {
	var q userListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return
	}

	from, ok := parseDateFilter(c, q.CreatedFrom, false)
	if !ok {
		return
	}
	to, ok := parseDateFilter(c, q.CreatedTo, true)
	if !ok {
		return
	}

	page, err := h.Users.List(c.Request.Context(), repositories.UserFilter{
		Params:      q.Params,
		Q:           q.Q,
		Role:        q.Role,
		Status:      q.Status,
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/users/:id (self or elevated)
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := authz.RequireOwnerOrElevated(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type userUpdateRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// PUT /api/users/:id (self for profile fields; role/status changes are
// admin-only)
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	var req userUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if p.ID != id {
		if err := authz.RequireAdmin(p); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.Role != nil || req.Status != nil {
		if err := authz.RequireAdmin(p); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		RespondDomainError(c, domain.ValidationError{Field: "role", Msg: "unknown role"})
		return
	}
	if req.Status != nil && !models.ValidUserStatus(*req.Status) {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "unknown status"})
		return
	}

	err := h.Users.Update(c.Request.Context(), id, repositories.UserPatch{
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id (admin, soft)
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}
	if p.ID == id {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "cannot delete own account"})
		return
	}

	if err := h.Users.SoftDelete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
