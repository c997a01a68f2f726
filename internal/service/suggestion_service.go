package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"generative-pets/internal/domain"
	"generative-pets/internal/repository"
)

// SuggestionService traduce las preferencias de un chat en un filtro sobre el
// catálogo de animales.
type SuggestionService struct {
	prefs   repository.PreferenceRepository
	animals repository.AnimalRepository
}

func NewSuggestionService(prefs repository.PreferenceRepository, animals repository.AnimalRepository) *SuggestionService {
	return &SuggestionService{prefs: prefs, animals: animals}
}

// Suggest devuelve las fichas que encajan con las preferencias del chat,
// ordenadas de más reciente a más antigua. Sin preferencias guardadas (o con
// un chat desconocido) devuelve lista vacía.
func (s *SuggestionService) Suggest(ctx context.Context, chatID string) ([]domain.AnimalProfile, error) {
	pref, err := s.prefs.GetByChatID(ctx, chatID)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.AnimalProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}

	animals, err := s.animals.Filter(ctx, BuildAnimalFilter(pref))
	if err != nil {
		return nil, fmt.Errorf("filter animals: %w", err)
	}
	if animals == nil {
		animals = []domain.AnimalProfile{}
	}
	return animals, nil
}

// BuildAnimalFilter aplica las reglas de precedencia leídas del comportamiento
// existente: logement=apartment pisa la talla exacta, cualquier alergia no
// vacía fuerza hypoallergenic, y la actividad baja/alta abre el rango de
// energía un nivel hacia el centro.
func BuildAnimalFilter(pref domain.Preference) domain.AnimalFilter {
	var f domain.AnimalFilter

	if pref.Housing == "apartment" {
		f.Sizes = []string{"small", "medium"}
	} else if pref.Size != "" {
		f.Sizes = []string{pref.Size}
	}

	if strings.TrimSpace(pref.Allergies) != "" {
		f.HypoallergenicOnly = true
	}

	switch pref.Activity {
	case "low":
		f.EnergyLevels = []string{"low", "medium"}
	case "high":
		f.EnergyLevels = []string{"medium", "high"}
	case "":
	default:
		f.EnergyLevels = []string{pref.Activity}
	}

	return f
}
