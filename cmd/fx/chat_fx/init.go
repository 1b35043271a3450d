package chat_fx

import (
	"go.uber.org/fx"
	"tripnote/internal/services"
)

var Module = fx.Provide(provideChatService)

func provideChatService() (services.ChatServiceInterface, error) {
	return services.NewGeminiChatService()
}
