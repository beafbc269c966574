package routes

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/handlers"
	"suraksha/internal/middleware"
)

// SetupQueryRoutes sets up the anonymous query surface. Submitting is
// public; the admin surface lives under /queries/admin.
func SetupQueryRoutes(r *gin.RouterGroup, queryHandler *handlers.QueryHandler, jwtSecret string) {
	queries := r.Group("/queries")
	{
		queries.POST("", queryHandler.Submit)
	}

	admin := r.Group("/queries/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/all", queryHandler.ListAll)
		admin.DELETE("/:id", queryHandler.Delete)
		admin.POST("/reply/:id", queryHandler.Reply)
	}
}
