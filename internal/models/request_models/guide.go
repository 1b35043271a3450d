package request_models

import "tripnote/internal/models/db_models"

type UpdateGuideRequest struct {
	City     string             `json:"city"`
	Schedule db_models.Schedule `json:"schedule" binding:"required"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required"`
}
