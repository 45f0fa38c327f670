package controllers

import (
	"hotel/dto"
	"hotel/response"
	"hotel/services"
	"hotel/validator"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Chatbot *services.ChatbotService
}

func NewChatController(chatbot *services.ChatbotService) ChatController {
	return ChatController{Chatbot: chatbot}
}

func (ch ChatController) ChatHandler(c *gin.Context) {
	var req dto.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.FromValidationError(err))
		return
	}

	reply, err := ch.Chatbot.Reply(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ChatbotResponse{Reply: reply})
}
