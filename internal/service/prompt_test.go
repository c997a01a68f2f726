package service

import (
	"strings"
	"testing"

	"generative-pets/internal/domain"
)

func TestRenderPreferences_Nil(t *testing.T) {
	if got := renderPreferences(nil); got != "" {
		t.Fatalf("expected empty string for nil preference, got %q", got)
	}
}

func TestRenderPreferences_AllFields(t *testing.T) {
	pref := &domain.Preference{
		Size:      "small",
		Housing:   "apartment",
		Allergies: "poils de chat",
		Activity:  "low",
	}
	got := renderPreferences(pref)

	want := "\n\nPréférences utilisateur:\n- Taille: small\n- Logement: apartment\n- Allergies: poils de chat\n- Activité: low"
	if got != want {
		t.Fatalf("unexpected rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderPreferences_EmptyAllergiesKeepsLine(t *testing.T) {
	pref := &domain.Preference{Size: "large", Housing: "house", Activity: "high"}
	got := renderPreferences(pref)
	if !strings.Contains(got, "- Allergies: \n") {
		t.Fatalf("expected empty allergies line, got %q", got)
	}
}
