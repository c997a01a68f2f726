package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"generative-pets/internal/domain"
)

type ChatRepository interface {
	Create(ctx context.Context, chat domain.Chat) error
	List(ctx context.Context) ([]domain.Chat, error)
	GetByID(ctx context.Context, id string) (domain.Chat, error)
	UpdateTitle(ctx context.Context, id, title string) (domain.Chat, error)
	UpdateSystemPrompt(ctx context.Context, id, systemPrompt string) (domain.Chat, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) Create(ctx context.Context, chat domain.Chat) error {
	const query = `
		INSERT INTO chats (id, title, system_prompt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		chat.ID,
		chat.Title,
		chat.SystemPrompt,
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	return err
}

func (r *PgChatRepository) List(ctx context.Context) ([]domain.Chat, error) {
	const query = `
		SELECT id, title, system_prompt, created_at, updated_at
		FROM chats
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ID, &c.Title, &c.SystemPrompt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (r *PgChatRepository) GetByID(ctx context.Context, id string) (domain.Chat, error) {
	const query = `
		SELECT id, title, system_prompt, created_at, updated_at
		FROM chats
		WHERE id = $1
	`
	var c domain.Chat
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.SystemPrompt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *PgChatRepository) UpdateTitle(ctx context.Context, id, title string) (domain.Chat, error) {
	const query = `
		UPDATE chats
		SET title = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, system_prompt, created_at, updated_at
	`
	var c domain.Chat
	err := r.pool.QueryRow(ctx, query, id, title).Scan(
		&c.ID,
		&c.Title,
		&c.SystemPrompt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *PgChatRepository) UpdateSystemPrompt(ctx context.Context, id, systemPrompt string) (domain.Chat, error) {
	const query = `
		UPDATE chats
		SET system_prompt = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, system_prompt, created_at, updated_at
	`
	var c domain.Chat
	err := r.pool.QueryRow(ctx, query, id, systemPrompt).Scan(
		&c.ID,
		&c.Title,
		&c.SystemPrompt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Touch actualiza updated_at para que el chat suba al tope del listado.
func (r *PgChatRepository) Touch(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE chats SET updated_at = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, at)
	return err
}

func (r *PgChatRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM chats WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
