package llm

import (
	"context"

	"generative-pets/internal/domain"
)

// Request reúne todo lo que el asesor ensambló para un turno: la instrucción
// de sistema (persona + preferencias), el historial previo en orden de
// creación, el texto nuevo del usuario y la imagen opcional.
type Request struct {
	SystemInstruction string
	History           []domain.Message
	UserText          string
	ImageBase64       string
	ImageMime         string
}

// Provider define la interfaz para generar respuestas con un LLM.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
