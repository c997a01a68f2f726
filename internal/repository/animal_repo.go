package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"generative-pets/internal/domain"
)

type AnimalRepository interface {
	Create(ctx context.Context, animal domain.AnimalProfile) error
	List(ctx context.Context) ([]domain.AnimalProfile, error)
	Filter(ctx context.Context, filter domain.AnimalFilter) ([]domain.AnimalProfile, error)
	DeleteAll(ctx context.Context) error
}

type PgAnimalRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnimalRepository(pool *pgxpool.Pool) *PgAnimalRepository {
	return &PgAnimalRepository{pool: pool}
}

const animalColumns = `id, species, name, breed, age_months, sex, size,
	good_with_kids, good_with_pets, hypoallergenic, energy_level, description, image_url, created_at`

func (r *PgAnimalRepository) Create(ctx context.Context, animal domain.AnimalProfile) error {
	const query = `
		INSERT INTO animal_profiles (id, species, name, breed, age_months, sex, size,
			good_with_kids, good_with_pets, hypoallergenic, energy_level, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		animal.ID,
		animal.Species,
		animal.Name,
		animal.Breed,
		animal.AgeMonths,
		animal.Sex,
		animal.Size,
		animal.GoodWithKids,
		animal.GoodWithPets,
		animal.Hypoallergenic,
		animal.EnergyLevel,
		animal.Description,
		animal.ImageURL,
		animal.CreatedAt,
	)
	return err
}

func (r *PgAnimalRepository) List(ctx context.Context) ([]domain.AnimalProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM animal_profiles ORDER BY created_at DESC`, animalColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnimals(rows)
}

// Filter arma el WHERE dinámicamente; cada condición ausente no filtra.
func (r *PgAnimalRepository) Filter(ctx context.Context, filter domain.AnimalFilter) ([]domain.AnimalProfile, error) {
	var (
		conds []string
		args  []any
	)
	if len(filter.Sizes) > 0 {
		args = append(args, filter.Sizes)
		conds = append(conds, fmt.Sprintf("size = ANY($%d)", len(args)))
	}
	if len(filter.EnergyLevels) > 0 {
		args = append(args, filter.EnergyLevels)
		conds = append(conds, fmt.Sprintf("energy_level = ANY($%d)", len(args)))
	}
	if filter.HypoallergenicOnly {
		conds = append(conds, "hypoallergenic = TRUE")
	}

	query := fmt.Sprintf(`SELECT %s FROM animal_profiles`, animalColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnimals(rows)
}

func (r *PgAnimalRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM animal_profiles`)
	return err
}

func scanAnimals(rows pgx.Rows) ([]domain.AnimalProfile, error) {
	var animals []domain.AnimalProfile
	for rows.Next() {
		var a domain.AnimalProfile
		err := rows.Scan(
			&a.ID,
			&a.Species,
			&a.Name,
			&a.Breed,
			&a.AgeMonths,
			&a.Sex,
			&a.Size,
			&a.GoodWithKids,
			&a.GoodWithPets,
			&a.Hypoallergenic,
			&a.EnergyLevel,
			&a.Description,
			&a.ImageURL,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}
	return animals, rows.Err()
}
