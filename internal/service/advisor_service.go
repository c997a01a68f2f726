package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"generative-pets/internal/domain"
	"generative-pets/internal/llm"
	"generative-pets/internal/repository"
)

// AdvisorService orquesta un turno de conversación: persiste los mensajes del
// usuario, ensambla el prompt con historial y preferencias, llama al proveedor
// y guarda la respuesta del asistente.
type AdvisorService struct {
	provider llm.Provider
	chats    repository.ChatRepository
	messages repository.MessageRepository
	prefs    repository.PreferenceRepository
	uploads  *UploadStore
	logger   *zap.Logger
}

func NewAdvisorService(
	provider llm.Provider,
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	prefs repository.PreferenceRepository,
	uploads *UploadStore,
	logger *zap.Logger,
) *AdvisorService {
	return &AdvisorService{
		provider: provider,
		chats:    chats,
		messages: messages,
		prefs:    prefs,
		uploads:  uploads,
		logger:   logger,
	}
}

// ReplyInput es la entrada de un turno; Content puede ser vacío si llega una
// imagen.
type ReplyInput struct {
	ChatID      string
	Content     string
	ImageBase64 string
	ImageMime   string
}

// Reply es lo que se devuelve al cliente tras un turno completo.
type Reply struct {
	Content   string
	ImagePath string
}

// Reply ejecuta el turno. Devuelve pgx.ErrNoRows envuelto cuando el chat no
// existe; cualquier otro error es una falla de proveedor o de persistencia.
func (s *AdvisorService) Reply(ctx context.Context, in ReplyInput) (Reply, error) {
	chat, err := s.chats.GetByID(ctx, in.ChatID)
	if err != nil {
		return Reply{}, fmt.Errorf("get chat: %w", err)
	}

	// El historial se captura antes de registrar el turno nuevo: el mensaje
	// entrante viaja aparte en el request al proveedor.
	history, err := s.messages.ListByChatID(ctx, chat.ID)
	if err != nil {
		return Reply{}, fmt.Errorf("list messages: %w", err)
	}

	// La escritura de la imagen es best-effort: si falla se registra y el
	// turno continúa sin ella.
	var imagePath string
	if in.ImageBase64 != "" {
		path, err := s.uploads.Save(chat.ID, in.ImageBase64, in.ImageMime)
		if err != nil {
			s.logger.Warn("failed to save image", zap.Error(err), zap.String("chat_id", chat.ID))
		} else {
			imagePath = path
			if err := s.storeMessage(ctx, chat.ID, domain.RoleUser, imagePath); err != nil {
				return Reply{}, fmt.Errorf("persist image message: %w", err)
			}
		}
	}

	userText := strings.TrimSpace(in.Content)
	if userText == "" && in.ImageBase64 != "" {
		userText = DefaultImageText
	}
	if userText != "" {
		if err := s.storeMessage(ctx, chat.ID, domain.RoleUser, userText); err != nil {
			return Reply{}, fmt.Errorf("persist user message: %w", err)
		}
	}

	systemPrompt := chat.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = domain.DefaultSystemPrompt
	}

	var prefText string
	pref, err := s.prefs.GetByChatID(ctx, chat.ID)
	switch {
	case err == nil:
		prefText = renderPreferences(&pref)
	case errors.Is(err, pgx.ErrNoRows):
		// Sin preferencias guardadas; el prompt va sin bloque de preferencias.
	default:
		return Reply{}, fmt.Errorf("get preference: %w", err)
	}

	answer, err := s.provider.Generate(ctx, llm.Request{
		SystemInstruction: systemPrompt + prefText,
		History:           history,
		UserText:          userText,
		ImageBase64:       in.ImageBase64,
		ImageMime:         in.ImageMime,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("llm generate: %w", err)
	}

	answer = StripThinkTags(answer)
	if answer == "" {
		answer = ApologyFallback
	}

	if err := s.storeMessage(ctx, chat.ID, domain.RoleAssistant, answer); err != nil {
		return Reply{}, fmt.Errorf("persist assistant message: %w", err)
	}
	if err := s.chats.Touch(ctx, chat.ID, time.Now().UTC()); err != nil {
		return Reply{}, fmt.Errorf("touch chat: %w", err)
	}

	return Reply{Content: answer, ImagePath: imagePath}, nil
}

func (s *AdvisorService) storeMessage(ctx context.Context, chatID, role, content string) error {
	return s.messages.Create(ctx, domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}
