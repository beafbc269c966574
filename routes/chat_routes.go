package routes

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/handlers"
)

// SetupChatRoutes sets up the public support-bot endpoint.
func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler) {
	chat := r.Group("/chat")
	{
		chat.POST("", chatHandler.Respond)
	}
}
