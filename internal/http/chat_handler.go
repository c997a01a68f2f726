package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"generative-pets/internal/domain"
	"generative-pets/internal/repository"
	"generative-pets/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de chats, preferencias,
// mensajes y sugerencias.
type ChatHandler struct {
	logger      *zap.Logger
	chats       repository.ChatRepository
	messages    repository.MessageRepository
	prefs       repository.PreferenceRepository
	advisor     *service.AdvisorService
	suggestions *service.SuggestionService
}

func NewChatHandler(
	logger *zap.Logger,
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	prefs repository.PreferenceRepository,
	advisor *service.AdvisorService,
	suggestions *service.SuggestionService,
) *ChatHandler {
	return &ChatHandler{
		logger:      logger,
		chats:       chats,
		messages:    messages,
		prefs:       prefs,
		advisor:     advisor,
		suggestions: suggestions,
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// CreateChat maneja POST /chats.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req struct {
		Title        string `json:"title" binding:"required"`
		SystemPrompt string `json:"systemPrompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = domain.DefaultSystemPrompt
	}

	now := time.Now().UTC()
	chat := domain.Chat{
		ID:           uuid.NewString(),
		Title:        req.Title,
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.chats.Create(c.Request.Context(), chat); err != nil {
		h.logger.Error("create chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// ListChats maneja GET /chats, ordenado por updatedAt descendente.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chats.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list chats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list chats"})
		return
	}
	if chats == nil {
		chats = []domain.Chat{}
	}
	c.JSON(http.StatusOK, chats)
}

type chatDetail struct {
	domain.Chat
	Messages   []domain.Message   `json:"messages"`
	Preference *domain.Preference `json:"preference,omitempty"`
}

// GetChat maneja GET /chats/:id con mensajes ascendentes y preferencia.
func (h *ChatHandler) GetChat(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	chat, err := h.chats.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		notFound(c)
		return
	}
	if err != nil {
		h.logger.Error("get chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get chat"})
		return
	}

	messages, err := h.messages.ListByChatID(ctx, id)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get chat"})
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	detail := chatDetail{Chat: chat, Messages: messages}
	pref, err := h.prefs.GetByChatID(ctx, id)
	if err == nil {
		detail.Preference = &pref
	} else if !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("get preference failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get chat"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// RenameChat maneja PATCH /chats/:id.
func (h *ChatHandler) RenameChat(c *gin.Context) {
	var req struct {
		Title *string `json:"title" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rename chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		chat domain.Chat
		err  error
	)
	if req.Title != nil {
		chat, err = h.chats.UpdateTitle(c.Request.Context(), c.Param("id"), *req.Title)
	} else {
		chat, err = h.chats.GetByID(c.Request.Context(), c.Param("id"))
	}
	if errors.Is(err, pgx.ErrNoRows) {
		notFound(c)
		return
	}
	if err != nil {
		h.logger.Error("rename chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// UpdatePrompt maneja PATCH /chats/:id/prompt.
func (h *ChatHandler) UpdatePrompt(c *gin.Context) {
	var req struct {
		SystemPrompt *string `json:"systemPrompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update prompt request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chats.UpdateSystemPrompt(c.Request.Context(), c.Param("id"), *req.SystemPrompt)
	if errors.Is(err, pgx.ErrNoRows) {
		notFound(c)
		return
	}
	if err != nil {
		h.logger.Error("update prompt failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// DeleteChat maneja DELETE /chats/:id; arrastra mensajes y preferencia.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	err := h.chats.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		notFound(c)
		return
	}
	if err != nil {
		h.logger.Error("delete chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete chat"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetChat maneja POST /chats/:id/reset; borra sólo los mensajes.
func (h *ChatHandler) ResetChat(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.chats.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			notFound(c)
			return
		}
		h.logger.Error("reset chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset chat"})
		return
	}

	if err := h.messages.DeleteByChatID(ctx, id); err != nil {
		h.logger.Error("reset chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset chat"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpsertPreferences maneja PUT /chats/:id/preferences; crea o reemplaza todos
// los campos.
func (h *ChatHandler) UpsertPreferences(c *gin.Context) {
	var req struct {
		Size      string `json:"size" binding:"required"`
		Housing   string `json:"housing" binding:"required"`
		Allergies string `json:"allergies"`
		Activity  string `json:"activity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid preferences request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.chats.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			notFound(c)
			return
		}
		h.logger.Error("upsert preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save preferences"})
		return
	}

	pref, err := h.prefs.Upsert(ctx, domain.Preference{
		ID:        uuid.NewString(),
		ChatID:    id,
		Size:      req.Size,
		Housing:   req.Housing,
		Allergies: req.Allergies,
		Activity:  req.Activity,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("upsert preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save preferences"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// PostMessage maneja POST /chats/:id/messages: registra el turno del usuario,
// pide la respuesta al proveedor y la devuelve.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Content     string `json:"content"`
		ImageBase64 string `json:"imageBase64"`
		ImageMime   string `json:"imageMime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ImageMime == "" {
		req.ImageMime = "image/jpeg"
	}

	reply, err := h.advisor.Reply(c.Request.Context(), service.ReplyInput{
		ChatID:      c.Param("id"),
		Content:     req.Content,
		ImageBase64: req.ImageBase64,
		ImageMime:   req.ImageMime,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		notFound(c)
		return
	}
	if err != nil {
		h.logger.Error("reply failed", zap.Error(err), zap.String("chat_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "LLM error"})
		return
	}

	var imagePath *string
	if reply.ImagePath != "" {
		imagePath = &reply.ImagePath
	}
	c.JSON(http.StatusOK, gin.H{"content": reply.Content, "imagePath": imagePath})
}

// Suggestions maneja GET /chats/:id/suggestions.
func (h *ChatHandler) Suggestions(c *gin.Context) {
	animals, err := h.suggestions.Suggest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("suggestions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build suggestions"})
		return
	}
	c.JSON(http.StatusOK, animals)
}
