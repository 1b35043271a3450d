package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"tripnote/internal/models/request_models"
	"tripnote/pkg/utils"
)

const travelAssistantPrompt = `你是一个专业的旅行规划师，专门为用户提供旅行建议。请判断用户输入是否与旅行相关。
如果是，则提供详细的旅行建议，包括推荐景点、行程规划、住宿、交通等。
如果不是，回答：'抱歉，我只能回答与旅行相关的问题。'`

const chatReplyTimeout = 20 * time.Second

type ChatServiceInterface interface {
	Reply(ctx context.Context, messages []request_models.ChatMessage) (string, error)
}

type GeminiChatService struct {
	client *genai.Client
	model  string
}

func NewGeminiChatService() (ChatServiceInterface, error) {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiChatService{client: client, model: model}, nil
}

func (s *GeminiChatService) Reply(ctx context.Context, messages []request_models.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", utils.ErrInvalidInput
	}
	for _, m := range messages {
		if m.Role == "" || strings.TrimSpace(m.Content) == "" {
			return "", utils.ErrInvalidInput
		}
	}

	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(0.7)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(travelAssistantPrompt)},
	}

	session := model.StartChat()
	for _, m := range messages[:len(messages)-1] {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	replyCtx, cancel := context.WithTimeout(ctx, chatReplyTimeout)
	defer cancel()

	resp, err := session.SendMessage(replyCtx, genai.Text(messages[len(messages)-1].Content))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", utils.ErrUpstreamFailure, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini returned no content", utils.ErrUpstreamFailure)
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
