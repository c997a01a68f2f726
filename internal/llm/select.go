package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"generative-pets/internal/config"
)

// Select construye el proveedor elegido para todo el proceso. La elección es
// fija al arranque: Gemini sólo con GEMINI_API_KEY presente y OPENAI_API_KEY
// ausente; en cualquier otro caso, el cliente OpenAI-compatible.
func Select(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Provider, string, error) {
	if cfg.UseGemini() {
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, "", err
		}
		return client, "gemini", nil
	}
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	return NewOpenAIClient(cfg.LLMBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel, timeout, logger), "openai", nil
}
