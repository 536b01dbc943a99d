package service

import (
	"context"
	"log"

	"github.com/veen-app/veen-api/internal/config"
	"github.com/veen-app/veen-api/internal/model"
)

// ConfiguredProviders builds a client for every vendor with an API key.
// Vendors without a key are left out of the map.
func ConfiguredProviders(ctx context.Context, geminiCfg *config.GeminiConfig, openAICfg *config.OpenAIConfig) map[model.Provider]LLMProvider {
	providers := make(map[model.Provider]LLMProvider, 2)

	if geminiCfg.APIKey != "" {
		gemini, err := NewGeminiService(ctx, geminiCfg)
		if err != nil {
			log.Printf("Gemini client disabled: %v", err)
		} else {
			providers[model.ProviderGemini] = gemini
			log.Printf("Gemini enabled with model %s", geminiCfg.Model)
		}
	}

	if openAICfg.APIKey != "" {
		openAI, err := NewOpenAIService(openAICfg)
		if err != nil {
			log.Printf("OpenAI client disabled: %v", err)
		} else {
			providers[model.ProviderOpenAI] = openAI
			log.Printf("OpenAI enabled with model %s", openAICfg.Model)
		}
	}

	if len(providers) == 0 {
		log.Println("Warning: no AI API key configured, tailoring requests will fail")
	}
	return providers
}
