package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"generative-pets/internal/config"
	"generative-pets/internal/db"
	"generative-pets/internal/domain"
	"generative-pets/internal/llm"
	"generative-pets/internal/repository"
	"generative-pets/internal/service"
)

// REPL de terminal contra el mismo AdvisorService que usa la API, sin pasar
// por HTTP. Útil para probar prompts y proveedores en local.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	chatRepo := repository.NewPgChatRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	prefRepo := repository.NewPgPreferenceRepository(pool)

	provider, providerName, err := llm.Select(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("proveedor: %s\n", providerName)

	uploads, err := service.NewUploadStore(cfg.UploadsDir)
	if err != nil {
		log.Fatal(err)
	}

	advisor := service.NewAdvisorService(provider, chatRepo, messageRepo, prefRepo, uploads, logger)

	chat, err := pickChat(ctx, reader, chatRepo)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("chat: %s (%s)\n", chat.Title, chat.ID)
	fmt.Println("escribe un mensaje; línea vacía para salir")

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		reply, err := advisor.Reply(ctx, service.ReplyInput{ChatID: chat.ID, Content: line})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(reply.Content)
	}
}

func pickChat(ctx context.Context, reader *bufio.Reader, chats repository.ChatRepository) (domain.Chat, error) {
	existing, err := chats.List(ctx)
	if err != nil {
		return domain.Chat{}, err
	}

	fmt.Println("0) nuevo chat")
	for i, c := range existing {
		fmt.Printf("%d) %s\n", i+1, c.Title)
	}
	fmt.Print("elige: ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return domain.Chat{}, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(line))
	if n > 0 && n <= len(existing) {
		return existing[n-1], nil
	}

	now := time.Now().UTC()
	chat := domain.Chat{
		ID:           uuid.NewString(),
		Title:        "CLI chat " + now.Format("2006-01-02 15:04"),
		SystemPrompt: domain.DefaultSystemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := chats.Create(ctx, chat); err != nil {
		return domain.Chat{}, err
	}
	return chat, nil
}
