package dto

type ChatbotRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

type ChatbotResponse struct {
	Reply string `json:"reply"`
}
