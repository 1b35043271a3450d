package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripnote/internal/models/request_models"
	"tripnote/internal/services"
	"tripnote/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// Chat godoc
// @Summary Ask the travel assistant
// @Description Send a conversation to the assistant, off-topic questions are declined
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Conversation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /chat [post]
func (ch *ChatController) Chat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := ch.chatService.Reply(c.Request.Context(), req.Messages)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"reply": reply}, "Reply generated successfully")
}
