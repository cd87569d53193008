package whisper

import "strings"

// DefaultLanguage is used when no usable language hint is given.
const DefaultLanguage = "de"

// ResolveLanguage derives a two-letter code from a free-form hint:
// "English" becomes "en". Hints shorter than two characters after trimming
// fall back to fallback, or DefaultLanguage when fallback is empty.
func ResolveLanguage(hint, fallback string) string {
	if fallback == "" {
		fallback = DefaultLanguage
	}
	code := []rune(strings.ToLower(strings.TrimSpace(hint)))
	if len(code) < 2 {
		return fallback
	}
	return string(code[:2])
}
