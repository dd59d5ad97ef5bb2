package util

import (
	"strings"
	"unicode"
)

// CleanText trims s and drops control and invisible formatting characters
// (zero-width spaces, bidi marks, BOM). Tabs and newlines inside the text
// survive so multi-line descriptions keep their shape.
func CleanText(s string) string {
	trimmed := strings.TrimSpace(s)

	builder := strings.Builder{}
	builder.Grow(len(trimmed))

	for _, char := range trimmed {
		if char == '\n' || char == '\t' {
			builder.WriteRune(char)
			continue
		}
		if unicode.IsControl(char) || isInvisibleUnicode(char) {
			continue
		}
		builder.WriteRune(char)
	}

	return strings.TrimSpace(builder.String())
}

// isInvisibleUnicode reports format characters (Unicode category Cf), which
// render as nothing but still count towards length checks.
func isInvisibleUnicode(r rune) bool {
	return unicode.Is(unicode.Cf, r)
}
