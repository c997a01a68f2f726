package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"generative-pets/internal/domain"
)

const (
	defaultTemperature = 0.4
	defaultMaxTokens   = 256
	defaultTopP        = 0.9

	// Turno de usuario cuando sólo llegó una imagen y el proveedor no la soporta.
	fallbackUserText = "Analyse."

	// Cuántos turnos de historial entran en el prompt plano de respaldo.
	plainPromptHistory = 8
)

// OpenAIClient implementa Provider contra una API OpenAI-compatible
// (OpenAI, LM Studio, Ollama, vLLM). No envía la imagen: este camino es
// sólo texto.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewOpenAIClient construye un cliente apuntando a la API de chat completions.
// Con apiKey vacía usa "lm-studio", suficiente para servidores locales.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		apiKey = "lm-studio"
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Generate llama al endpoint estructurado de chat y, si este devuelve texto
// vacío sin error, reintenta una única vez con un prompt plano por el
// endpoint de completions, cortando la generación en el centinela </think>.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	userText := req.UserText
	if strings.TrimSpace(userText) == "" {
		userText = fallbackUserText
	}

	messages := make([]chatMessage, 0, len(req.History)+2)
	messages = append(messages, chatMessage{Role: domain.RoleSystem, Content: req.SystemInstruction})
	for _, m := range req.History {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: domain.RoleUser, Content: userText})

	text, err := c.chatCompletion(ctx, messages)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	if c.logger != nil {
		c.logger.Warn("empty chat completion, retrying with plain prompt", zap.String("model", c.model))
	}
	return c.plainCompletion(ctx, buildPlainPrompt(req.SystemInstruction, req.History, userText))
}

func (c *OpenAIClient) chatCompletion(ctx context.Context, messages []chatMessage) (string, error) {
	body := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		TopP:        defaultTopP,
		Stream:      false,
	}

	respBody, err := c.post(ctx, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("llm api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}
	return cr.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) plainCompletion(ctx context.Context, prompt string) (string, error) {
	body := completionRequest{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		TopP:        defaultTopP,
		Stream:      false,
		Stop:        []string{"</think>"},
	}

	respBody, err := c.post(ctx, "/completions", body)
	if err != nil {
		return "", err
	}

	var cr completionResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("llm api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}
	return cr.Choices[0].Text, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, body any) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Warn("llm http error",
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(respBody)),
			)
		}
		return nil, fmt.Errorf("llm http error: status=%d", resp.StatusCode)
	}
	return respBody, nil
}

// buildPlainPrompt rinde la conversación como texto para el endpoint de
// completions: cabecera de sistema, últimos turnos como líneas
// Utilisateur/Assistant y un "Assistant:" final abierto.
func buildPlainPrompt(systemInstruction string, history []domain.Message, userText string) string {
	var sb strings.Builder
	sb.WriteString(systemInstruction)
	sb.WriteString("\n\nTu dois répondre en une ou deux phrases claires, sans balises <think>, uniquement en texte.")
	sb.WriteString("\n\n")

	if len(history) > plainPromptHistory {
		history = history[len(history)-plainPromptHistory:]
	}
	for _, m := range history {
		role := "Utilisateur"
		if m.Role == domain.RoleAssistant {
			role = "Assistant"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", role, m.Content))
	}
	sb.WriteString(fmt.Sprintf("Utilisateur: %s\n", userText))
	sb.WriteString("Assistant:")
	return sb.String()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type completionRequest struct {
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	Temperature float64  `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
	TopP        float64  `json:"top_p"`
	Stream      bool     `json:"stream"`
	Stop        []string `json:"stop,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
