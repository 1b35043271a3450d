package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"tripnote/pkg/utils"
)

// ItineraryGenerator produces raw model output for the two generation entry
// points. The output is free-form text; extraction happens downstream.
type ItineraryGenerator interface {
	ExtractItinerary(ctx context.Context, combinedText string) (string, error)
	RecommendItinerary(ctx context.Context, city, keyword string, days int) (string, error)
}

// SparkClient talks to an OpenAI-shaped chat-completions endpoint.
type SparkClient struct {
	client         *openai.Client
	extractModel   string
	recommendModel string
}

func NewSparkClient() *SparkClient {
	base := os.Getenv("SPARK_API_URL")
	if base == "" {
		base = "https://spark-api-open.xf-yun.com/v1"
	}
	config := openai.DefaultConfig(os.Getenv("SPARK_API_PASSWORD"))
	config.BaseURL = base
	config.HTTPClient = &http.Client{Timeout: 20 * time.Second}

	return &SparkClient{
		client:         openai.NewClientWithConfig(config),
		extractModel:   "generalv3",
		recommendModel: "4.0Ultra",
	}
}

// NewSparkClientWith is the test seam: any base URL, plain http client.
func NewSparkClientWith(baseURL, apiKey string) *SparkClient {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &SparkClient{
		client:         openai.NewClientWithConfig(config),
		extractModel:   "generalv3",
		recommendModel: "4.0Ultra",
	}
}

const extractPromptSuffix = ` 读取内容，提取景点，直接返回以下格式的 JSON 字符串，不要包含任何多余的文本、Markdown 标记或其他内容：
{
  "city": "城市名称",
  "data": [
    {
      "day": 1,
      "places": [
        {
          "name": "景点A",
          "description": "景点A的介绍"
        }
      ]
    }
  ]
}`

func (c *SparkClient) ExtractItinerary(ctx context.Context, combinedText string) (string, error) {
	return c.complete(ctx, c.extractModel, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: combinedText + extractPromptSuffix,
		},
	})
}

func (c *SparkClient) RecommendItinerary(ctx context.Context, city, keyword string, days int) (string, error) {
	userPrompt := fmt.Sprintf(`请为我在%s规划一个%d天的旅行攻略，推荐与"%s"相关的热门景点。
1-2天：每天4个左右景点，3天，可以3个左右。
直接返回以下格式的 JSON 字符串，不要包含任何多余的文本、Markdown 标记或其他内容。
格式：
[
  { "day": 1, "places": [{ "name": "景点A", "description": "简短描述" },
    { "name": "景点B", "description": "简短描述" } ] },
]`, city, days, keyword)

	return c.complete(ctx, c.recommendModel, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "你是一位专业的旅行规划师，熟知中国各城市的热门景点。请根据用户输入的城市和关键字，推荐该城市的真实旅游景点。",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		},
	})
}

func (c *SparkClient) complete(ctx context.Context, model string, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: 2048,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", utils.ErrUpstreamFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion returned no choices", utils.ErrUpstreamFailure)
	}
	return resp.Choices[0].Message.Content, nil
}
