package service

import (
	"fmt"
	"strings"

	"generative-pets/internal/domain"
)

// DefaultImageText reemplaza el texto del usuario cuando sólo llegó una imagen.
const DefaultImageText = "Analyse cette image."

// ApologyFallback se devuelve cuando el modelo no produjo nada utilizable.
const ApologyFallback = "Désolé, je n'ai pas pu générer de réponse cette fois. Peux-tu reformuler ?"

// renderPreferences arma el bloque legible de preferencias que se concatena a
// la instrucción de sistema. Devuelve cadena vacía si el chat no tiene
// preferencias guardadas.
func renderPreferences(pref *domain.Preference) string {
	if pref == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\nPréférences utilisateur:\n")
	sb.WriteString(fmt.Sprintf("- Taille: %s\n", pref.Size))
	sb.WriteString(fmt.Sprintf("- Logement: %s\n", pref.Housing))
	sb.WriteString(fmt.Sprintf("- Allergies: %s\n", pref.Allergies))
	sb.WriteString(fmt.Sprintf("- Activité: %s", pref.Activity))
	return sb.String()
}
