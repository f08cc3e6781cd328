package http

import (
	"boardapi/internal/config"
	"boardapi/internal/domain/models"
	"boardapi/internal/http/handlers"
	"boardapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine: global middleware first, then the
// route groups with their auth requirements.
func NewRouter(h *handlers.Handler, env config.Env, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(env.AllowedOrigins))

	auth := middleware.Auth(env.JWTSecret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	elevated := middleware.RequireRoles(models.RoleAdmin, models.RoleModerator)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		api.GET("/categories", h.ListCategories)
		api.GET("/categories/:slug", h.GetCategory)
		api.POST("/categories", auth, adminOnly, h.CreateCategory)
		api.PUT("/categories/:id", auth, adminOnly, h.UpdateCategory)
		api.DELETE("/categories/:id", auth, adminOnly, h.DeleteCategory)

		api.GET("/threads", h.ListThreads)
		api.GET("/threads/:id", h.GetThread)
		api.GET("/threads/:id/transcript", h.ExportThreadTranscript)
		api.POST("/threads", auth, h.CreateThread)
		api.PUT("/threads/:id", auth, h.UpdateThread)
		api.DELETE("/threads/:id", auth, h.DeleteThread)

		api.GET("/threads/:id/comments", h.ListComments)
		api.POST("/threads/:id/comments", auth, h.CreateComment)
		api.PUT("/comments/:id", auth, h.UpdateComment)
		api.DELETE("/comments/:id", auth, h.DeleteComment)

		api.GET("/users", auth, adminOnly, h.ListUsers)
		api.GET("/users/:id", auth, h.GetUser)
		api.PUT("/users/:id", auth, h.UpdateUser)
		api.DELETE("/users/:id", auth, adminOnly, h.DeleteUser)

		api.POST("/reports", auth, h.CreateReport)
		api.GET("/reports", auth, elevated, h.ListReports)
		api.GET("/reports/:id", auth, h.GetReport)
		api.PUT("/reports/:id/resolve", auth, elevated, h.ResolveReport)
		api.PUT("/reports/:id/dismiss", auth, elevated, h.DismissReport)

		me := api.Group("/me", auth)
		{
			me.GET("/threads", h.ListMyThreads)
			me.GET("/reports", h.ListMyReports)
		}

		admin := api.Group("/admin", auth, elevated)
		{
			admin.GET("/threads", h.ListThreadsAdmin)
			admin.GET("/reports/export", h.ExportModerationSummary)
		}
	}

	return r
}
