package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT" envDefault:"4000"`
	DatabaseURL       string `env:"DATABASE_URL,required"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string `env:"LLM_MODEL" envDefault:"qwen/qwen3-8b"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiModel       string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	UploadsDir        string `env:"UPLOADS_DIR" envDefault:"uploads"`
	LLMTimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UseGemini decide el proveedor una sola vez al arranque: Gemini únicamente
// cuando su credencial está presente y la de OpenAI ausente.
func (c *Config) UseGemini() bool {
	return c.GeminiAPIKey != "" && c.OpenAIAPIKey == ""
}
