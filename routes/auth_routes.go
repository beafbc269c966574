package routes

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/handlers"
)

// SetupAuthRoutes sets up login and the OTP flow. All public.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/send-otp", authHandler.RequestOTP)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
	}
}

// SetupUserRoutes sets up account registration.
func SetupUserRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	users := r.Group("/users")
	{
		users.POST("/register", authHandler.Register)
	}
}
