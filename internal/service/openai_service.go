package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"github.com/veen-app/veen-api/internal/config"
)

type OpenAIService struct {
	APIKey  string
	Model   string
	BaseURL string
	client  *resty.Client
}

func NewOpenAIService(cfg *config.OpenAIConfig) (*OpenAIService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	return &OpenAIService{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  resty.New().SetTimeout(90 * time.Second),
	}, nil
}

func (s *OpenAIService) Name() string {
	return "OpenAI"
}

// GenerateJSON posts a chat completion in json_object mode and returns
// choices.0.message.content.
func (s *OpenAIService) GenerateJSON(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	messages := make([]map[string]string, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemInstruction})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":           s.Model,
			"messages":        messages,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post(s.BaseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	body := resp.String()
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", &StatusError{
			Provider: s.Name(),
			Code:     resp.StatusCode(),
			Message:  gjson.Get(body, "error.message").String(),
		}
	}

	text := strings.TrimSpace(gjson.Get(body, "choices.0.message.content").String())
	if text == "" {
		return "", fmt.Errorf("%w from OpenAI", ErrNoStructuredContent)
	}
	return text, nil
}

var _ LLMProvider = (*OpenAIService)(nil)
