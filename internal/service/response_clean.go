package service

import (
	"regexp"
	"strings"
)

var thinkBlockRe = regexp.MustCompile(`(?is)<think>.*?</think>`)

// StripThinkTags quita los bloques <think>...</think> que algunos modelos
// emiten como razonamiento y recorta espacios sobrantes.
func StripThinkTags(raw string) string {
	return strings.TrimSpace(thinkBlockRe.ReplaceAllString(raw, ""))
}
