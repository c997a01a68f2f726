package service

import "testing"

func TestStripThinkTags_RemovesBlock(t *testing.T) {
	raw := "<think>raisonnement interne\nsur plusieurs lignes</think>Adopte un labrador."
	got := StripThinkTags(raw)
	if got != "Adopte un labrador." {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestStripThinkTags_CaseInsensitive(t *testing.T) {
	raw := "<THINK>bruit</THINK> Réponse."
	got := StripThinkTags(raw)
	if got != "Réponse." {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestStripThinkTags_MultipleBlocks(t *testing.T) {
	raw := "<think>a</think>un chat<think>b</think> calme"
	got := StripThinkTags(raw)
	if got != "un chat calme" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestStripThinkTags_OnlyThinkBecomesEmpty(t *testing.T) {
	raw := "  <think>que répondre...</think>  "
	if got := StripThinkTags(raw); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestStripThinkTags_PlainTextUntouched(t *testing.T) {
	raw := "Un chien de taille moyenne conviendrait."
	if got := StripThinkTags(raw); got != raw {
		t.Fatalf("expected text untouched, got %q", got)
	}
}
