package handlers

import (
	"github.com/gin-gonic/gin"

	"suraksha/internal/services"
	"suraksha/internal/utils"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Respond answers a support-bot message. No authentication.
func (h *ChatHandler) Respond(c *gin.Context) {
	var request chatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if request.Message == "" {
		utils.ValidationErrorResponse(c, "message is required")
		return
	}
	if len(request.Message) > utils.MaxMessageLength {
		utils.ValidationErrorResponse(c, "message is too long")
		return
	}

	reply, err := h.chatService.Respond(c.Request.Context(), request.Message)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Reply generated", reply)
}
