package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"generative-pets/internal/domain"
)

type PreferenceRepository interface {
	Upsert(ctx context.Context, pref domain.Preference) (domain.Preference, error)
	GetByChatID(ctx context.Context, chatID string) (domain.Preference, error)
}

type PgPreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgPreferenceRepository(pool *pgxpool.Pool) *PgPreferenceRepository {
	return &PgPreferenceRepository{pool: pool}
}

// Upsert crea la preferencia del chat o reemplaza todos sus campos; no hay
// semántica de actualización parcial.
func (r *PgPreferenceRepository) Upsert(ctx context.Context, pref domain.Preference) (domain.Preference, error) {
	const query = `
		INSERT INTO preferences (id, chat_id, size, housing, allergies, activity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (chat_id) DO UPDATE
		SET size = EXCLUDED.size,
		    housing = EXCLUDED.housing,
		    allergies = EXCLUDED.allergies,
		    activity = EXCLUDED.activity,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, chat_id, size, housing, allergies, activity, updated_at
	`

	var out domain.Preference
	err := r.pool.QueryRow(ctx, query,
		pref.ID,
		pref.ChatID,
		pref.Size,
		pref.Housing,
		pref.Allergies,
		pref.Activity,
		pref.UpdatedAt,
	).Scan(
		&out.ID,
		&out.ChatID,
		&out.Size,
		&out.Housing,
		&out.Allergies,
		&out.Activity,
		&out.UpdatedAt,
	)
	return out, err
}

func (r *PgPreferenceRepository) GetByChatID(ctx context.Context, chatID string) (domain.Preference, error) {
	const query = `
		SELECT id, chat_id, size, housing, allergies, activity, updated_at
		FROM preferences
		WHERE chat_id = $1
	`
	var pref domain.Preference
	err := r.pool.QueryRow(ctx, query, chatID).Scan(
		&pref.ID,
		&pref.ChatID,
		&pref.Size,
		&pref.Housing,
		&pref.Allergies,
		&pref.Activity,
		&pref.UpdatedAt,
	)
	return pref, err
}
