package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"boardapi/internal/authz"
	"boardapi/internal/config"
	"boardapi/internal/http/middleware"
	"boardapi/internal/repositories"
	"boardapi/internal/services"
	"boardapi/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries the injected dependencies every endpoint needs. It is
// constructed once at startup; requests share it read-only.
type Handler struct {
	DB  *sql.DB
	Env config.Env
	Log *zap.Logger

	Users      repositories.UserRepository
	Categories repositories.CategoryRepository
	Threads    repositories.ThreadRepository
	Comments   repositories.CommentRepository
	Reports    repositories.ReportRepository
	Exports    services.ExportService
}

func New(db *sql.DB, env config.Env, log *zap.Logger) *Handler {
	threads := repositories.ThreadRepository{DB: db}
	comments := repositories.CommentRepository{DB: db}
	reports := repositories.ReportRepository{DB: db}

	return &Handler{
		DB:         db,
		Env:        env,
		Log:        log,
		Users:      repositories.UserRepository{DB: db},
		Categories: repositories.CategoryRepository{DB: db},
		Threads:    threads,
		Comments:   comments,
		Reports:    reports,
		Exports: services.ExportService{
			Threads:  threads,
			Comments: comments,
			Reports:  reports,
		},
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", err.Error())
		return false
	}
	return true
}

// pathID parses the :id path segment; a response is already written when ok
// is false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}

// principal fetches the authenticated principal; a 401 is already written
// when ok is false. Routes behind middleware.Auth always succeed here.
func principal(c *gin.Context) (authz.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_error", "missing or invalid credential", nil)
	}
	return p, ok
}

// parseDateFilter turns an optional YYYY-MM-DD query value into a time
// bound. endOfDay makes "to" dates inclusive.
func parseDateFilter(c *gin.Context, raw string, endOfDay bool) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "dates must be YYYY-MM-DD", nil)
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, true
}
