package whisper

import "strings"

// AssembleTranscript joins segment texts in order. Each text is trimmed and
// non-empty texts are separated by exactly one space.
func AssembleTranscript(texts []string) string {
	var b strings.Builder
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}
