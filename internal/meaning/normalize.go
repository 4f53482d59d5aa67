package meaning

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims and lower-cases a keyword.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// StripAccents removes combining marks, so "água" becomes "agua".
func StripAccents(s string) string {
	// A transformer keeps state, so every call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// TitleCase upper-cases the first letter of each space-separated segment.
func TitleCase(s string) string {
	segments := strings.Split(s, " ")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		r := []rune(segment)
		r[0] = unicode.ToUpper(r[0])
		segments[i] = string(r)
	}
	return strings.Join(segments, " ")
}

func fallbackMeaning(word string) string {
	return fmt.Sprintf(fallbackMeaningFormat, word)
}
