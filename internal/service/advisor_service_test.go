package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"generative-pets/internal/domain"
	"generative-pets/internal/llm"
)

type mockChatRepo struct {
	chats   map[string]domain.Chat
	touched map[string]time.Time
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{chats: make(map[string]domain.Chat), touched: make(map[string]time.Time)}
}

func (m *mockChatRepo) Create(_ context.Context, chat domain.Chat) error {
	m.chats[chat.ID] = chat
	return nil
}

func (m *mockChatRepo) List(_ context.Context) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range m.chats {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockChatRepo) GetByID(_ context.Context, id string) (domain.Chat, error) {
	chat, ok := m.chats[id]
	if !ok {
		return domain.Chat{}, pgx.ErrNoRows
	}
	return chat, nil
}

func (m *mockChatRepo) UpdateTitle(_ context.Context, id, title string) (domain.Chat, error) {
	chat, ok := m.chats[id]
	if !ok {
		return domain.Chat{}, pgx.ErrNoRows
	}
	chat.Title = title
	m.chats[id] = chat
	return chat, nil
}

func (m *mockChatRepo) UpdateSystemPrompt(_ context.Context, id, systemPrompt string) (domain.Chat, error) {
	chat, ok := m.chats[id]
	if !ok {
		return domain.Chat{}, pgx.ErrNoRows
	}
	chat.SystemPrompt = systemPrompt
	m.chats[id] = chat
	return chat, nil
}

func (m *mockChatRepo) Touch(_ context.Context, id string, at time.Time) error {
	m.touched[id] = at
	return nil
}

func (m *mockChatRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.chats[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.chats, id)
	return nil
}

type mockMessageRepo struct {
	messages []domain.Message
}

func (m *mockMessageRepo) Create(_ context.Context, message domain.Message) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepo) ListByChatID(_ context.Context, chatID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) DeleteByChatID(_ context.Context, chatID string) error {
	var kept []domain.Message
	for _, msg := range m.messages {
		if msg.ChatID != chatID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

func newAdvisorFixture(t *testing.T, provider llm.Provider) (*AdvisorService, *mockChatRepo, *mockMessageRepo, *mockPrefRepo) {
	t.Helper()
	chats := newMockChatRepo()
	messages := &mockMessageRepo{}
	prefs := newMockPrefRepo()
	uploads, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("upload store: %v", err)
	}
	svc := NewAdvisorService(provider, chats, messages, prefs, uploads, zap.NewNop())
	return svc, chats, messages, prefs
}

func seedChat(chats *mockChatRepo, id, systemPrompt string) {
	now := time.Now().UTC()
	chats.chats[id] = domain.Chat{ID: id, Title: "t", SystemPrompt: systemPrompt, CreatedAt: now, UpdatedAt: now}
}

func TestReply_UnknownChat(t *testing.T) {
	svc, _, _, _ := newAdvisorFixture(t, &llm.MockProvider{Response: "ok"})

	_, err := svc.Reply(context.Background(), ReplyInput{ChatID: "missing", Content: "hola"})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestReply_PersistsUserAndAssistantMessages(t *testing.T) {
	provider := &llm.MockProvider{Response: "Un labrador conviendrait."}
	svc, chats, messages, _ := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona")

	reply, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", Content: "Quel chien ?"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.Content != "Un labrador conviendrait." {
		t.Fatalf("unexpected reply: %q", reply.Content)
	}
	if len(messages.messages) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(messages.messages))
	}
	if messages.messages[0].Role != domain.RoleUser || messages.messages[0].Content != "Quel chien ?" {
		t.Fatalf("unexpected user message: %+v", messages.messages[0])
	}
	if messages.messages[1].Role != domain.RoleAssistant {
		t.Fatalf("unexpected assistant message: %+v", messages.messages[1])
	}
	if _, ok := chats.touched["chat-1"]; !ok {
		t.Fatal("expected chat updatedAt to be bumped")
	}
}

func TestReply_ImageOnlyUsesDefaultText(t *testing.T) {
	provider := &llm.MockProvider{Response: "C'est un chat tigré."}
	svc, chats, messages, _ := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona")

	img := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))
	reply, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", ImageBase64: img, ImageMime: "image/jpeg"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.ImagePath == "" || !strings.HasPrefix(reply.ImagePath, "/uploads/chat-1-") {
		t.Fatalf("unexpected image path: %q", reply.ImagePath)
	}
	// Mensaje de imagen, mensaje de texto por defecto y respuesta.
	if len(messages.messages) != 3 {
		t.Fatalf("expected 3 persisted messages, got %d", len(messages.messages))
	}
	if messages.messages[0].Content != reply.ImagePath {
		t.Fatalf("expected first message to hold the image path, got %q", messages.messages[0].Content)
	}
	if messages.messages[1].Content != DefaultImageText {
		t.Fatalf("expected default image text, got %q", messages.messages[1].Content)
	}
	if provider.LastReq.UserText != DefaultImageText {
		t.Fatalf("expected provider to receive default text, got %q", provider.LastReq.UserText)
	}
}

func TestReply_SystemInstructionIncludesPreferences(t *testing.T) {
	provider := &llm.MockProvider{Response: "ok"}
	svc, chats, _, prefs := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona de conseil")
	prefs.prefs["chat-1"] = domain.Preference{ChatID: "chat-1", Size: "small", Housing: "apartment", Activity: "low"}

	if _, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", Content: "bonjour"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	sys := provider.LastReq.SystemInstruction
	if !strings.HasPrefix(sys, "persona de conseil") {
		t.Fatalf("expected system prompt first, got %q", sys)
	}
	if !strings.Contains(sys, "Préférences utilisateur:") || !strings.Contains(sys, "- Logement: apartment") {
		t.Fatalf("expected preference block in system instruction, got %q", sys)
	}
}

func TestReply_HistoryExcludesNewTurn(t *testing.T) {
	provider := &llm.MockProvider{Response: "ok"}
	svc, chats, messages, _ := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona")
	messages.messages = []domain.Message{
		{ID: "m1", ChatID: "chat-1", Role: domain.RoleUser, Content: "ancien"},
		{ID: "m2", ChatID: "chat-1", Role: domain.RoleAssistant, Content: "réponse"},
	}

	if _, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", Content: "nouveau"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(provider.LastReq.History) != 2 {
		t.Fatalf("expected 2 history turns, got %d", len(provider.LastReq.History))
	}
	if provider.LastReq.UserText != "nouveau" {
		t.Fatalf("unexpected user text: %q", provider.LastReq.UserText)
	}
}

func TestReply_StripsThinkAndFallsBackToApology(t *testing.T) {
	provider := &llm.MockProvider{Response: "<think>hmm, que dire</think>"}
	svc, chats, messages, _ := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona")

	reply, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", Content: "bonjour"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.Content != ApologyFallback {
		t.Fatalf("expected apology fallback, got %q", reply.Content)
	}
	last := messages.messages[len(messages.messages)-1]
	if last.Role != domain.RoleAssistant || last.Content != ApologyFallback {
		t.Fatalf("expected apology persisted, got %+v", last)
	}
}

func TestReply_ProviderErrorKeepsUserMessage(t *testing.T) {
	provider := &llm.MockProvider{Err: errors.New("connection refused")}
	svc, chats, messages, _ := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona")

	_, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", Content: "bonjour"})
	if err == nil {
		t.Fatal("expected provider error")
	}
	if len(messages.messages) != 1 {
		t.Fatalf("expected only the user message persisted, got %d", len(messages.messages))
	}
	if messages.messages[0].Role != domain.RoleUser {
		t.Fatalf("unexpected surviving message: %+v", messages.messages[0])
	}
	if len(chats.touched) != 0 {
		t.Fatal("expected updatedAt untouched after provider failure")
	}
}

func TestReply_BadImageIsBestEffort(t *testing.T) {
	provider := &llm.MockProvider{Response: "ok"}
	svc, chats, messages, _ := newAdvisorFixture(t, provider)
	seedChat(chats, "chat-1", "persona")

	// Base64 inválido: la imagen se descarta pero el turno sigue.
	reply, err := svc.Reply(context.Background(), ReplyInput{ChatID: "chat-1", Content: "regarde", ImageBase64: "%%%"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.ImagePath != "" {
		t.Fatalf("expected no image path, got %q", reply.ImagePath)
	}
	if len(messages.messages) != 2 {
		t.Fatalf("expected user+assistant messages only, got %d", len(messages.messages))
	}
}
