package routes

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/handlers"
	"suraksha/internal/middleware"
)

// SetupSOSRoutes sets up emergency alert routes. Raising requires any
// authenticated user; the admin surface lives under /sos/admin.
func SetupSOSRoutes(r *gin.RouterGroup, sosHandler *handlers.SOSHandler, jwtSecret string) {
	sos := r.Group("/sos")
	sos.Use(middleware.AuthRequired(jwtSecret))
	{
		sos.POST("", sosHandler.Raise)
	}

	admin := r.Group("/sos/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/all", sosHandler.ListAll)
		admin.DELETE("/:id", sosHandler.Delete)
	}
}
