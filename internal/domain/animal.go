package domain

import "time"

// AnimalProfile es una ficha del catálogo de animales adoptables. No tiene
// relación con ningún chat; sólo se consulta para sugerencias y listado.
type AnimalProfile struct {
	ID             string    `json:"id"`
	Species        string    `json:"species"`
	Name           string    `json:"name"`
	Breed          string    `json:"breed,omitempty"`
	AgeMonths      int       `json:"ageMonths"`
	Sex            string    `json:"sex,omitempty"`
	Size           string    `json:"size"`
	GoodWithKids   bool      `json:"goodWithKids"`
	GoodWithPets   bool      `json:"goodWithPets"`
	Hypoallergenic bool      `json:"hypoallergenic"`
	EnergyLevel    string    `json:"energyLevel"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AnimalFilter acota la búsqueda de fichas; un slice vacío no filtra.
type AnimalFilter struct {
	Sizes              []string
	EnergyLevels       []string
	HypoallergenicOnly bool
}
