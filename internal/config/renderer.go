package config

import (
	"os"
	"sync"
	"time"
)

type RendererConfig struct {
	ChromePath string
	Timeout    time.Duration
}

var (
	rendererConfig *RendererConfig
	rendererOnce   sync.Once
)

func LoadRendererConfig() *RendererConfig {
	rendererOnce.Do(func() {
		timeout := 60 * time.Second
		if raw := os.Getenv("PDF_RENDER_TIMEOUT"); raw != "" {
			if d, err := time.ParseDuration(raw); err == nil && d > 0 {
				timeout = d
			}
		}
		rendererConfig = &RendererConfig{
			ChromePath: os.Getenv("CHROME_PATH"),
			Timeout:    timeout,
		}
	})
	return rendererConfig
}
