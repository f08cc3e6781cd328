package handlers

import (
	"net/http"
	"strings"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
	"boardapi/internal/query"
	"boardapi/internal/repositories"
	"boardapi/internal/utils"

	"github.com/gin-gonic/gin"
)

type categoryListQuery struct {
	query.Params
	Q *string `form:"q"`
}

// GET /api/categories (public)
func (h *Handler) ListCategories(c *gin.Context) {
	var q categoryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid query parameters", err.Error())
		return
	}

	page, err := h.Categories.List(c.Request.Context(), repositories.CategoryFilter{
		Params: q.Params,
		Q:      q.Q,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/categories/:slug (public)
func (h *Handler) GetCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid slug", nil)
		return
	}

	cat, err := h.Categories.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /api/categories (admin)
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	name := utils.NormalizeSpace(req.Name)
	if name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "must not be empty"})
		return
	}
	slug := utils.Slugify(name)
	if slug == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "must contain letters or digits"})
		return
	}

	id, err := h.Categories.Create(c.Request.Context(), models.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	cat, err := h.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// PUT /api/categories/:id (admin; slug stays stable)
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "must not be empty"})
		return
	}

	if err := h.Categories.Update(c.Request.Context(), id, req.Name, req.Description); err != nil {
		RespondDomainError(c, err)
		return
	}

	cat, err := h.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DELETE /api/categories/:id (admin; refuses while threads reference it)
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Categories.SoftDelete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
