package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/veen-app/veen-api/internal/config"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client         *genai.Client
	Model          string
	RequestTimeout time.Duration
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		Model:          cfg.Model,
		RequestTimeout: 90 * time.Second,
	}, nil
}

func (s *GeminiService) Name() string {
	return "Gemini"
}

// GenerateJSON asks Gemini for a JSON answer shaped by resumeSchema and
// returns candidates[0].content.parts[0].text.
func (s *GeminiService) GenerateJSON(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if s.Model == "" {
		return "", fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   resumeSchema(),
	}
	if systemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", s.wrapError(err)
	}

	if err := s.validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("%w from Gemini: %v", ErrNoStructuredContent, err)
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w from Gemini", ErrNoStructuredContent)
	}
	return text, nil
}

func (s *GeminiService) wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: s.Name(), Code: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &StatusError{Provider: s.Name(), Code: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	if strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return &StatusError{Provider: s.Name(), Code: 429, Message: err.Error()}
	}
	return fmt.Errorf("generate content failed: %w", err)
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

// resumeSchema is the response schema sent with every tailoring call.
func resumeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "The rewritten professional summary, tailored to the job description.",
			},
			"experience": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":    {Type: genai.TypeString},
						"company":  {Type: genai.TypeString},
						"duration": {Type: genai.TypeString},
						"description": {
							Type:        genai.TypeString,
							Description: "The primary bullet point, rewritten to be quantified and keyword-optimized.",
						},
					},
				},
			},
			"skills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Top 10 skills directly relevant to the job description.",
			},
			"education": {
				Type:        genai.TypeString,
				Description: "Education details, kept as is.",
			},
		},
	}
}

var _ LLMProvider = (*GeminiService)(nil)
