package domain

import "time"

// Preference guarda las restricciones de adopción declaradas por el usuario.
// Hay como máximo una por chat; el upsert reemplaza todos los campos.
type Preference struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	Size      string    `json:"size"`
	Housing   string    `json:"housing"`
	Allergies string    `json:"allergies"`
	Activity  string    `json:"activity"`
	UpdatedAt time.Time `json:"updatedAt"`
}
