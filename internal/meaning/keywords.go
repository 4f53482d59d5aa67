package meaning

import (
	"strings"
	"unicode/utf8"
)

const (
	maxKeywords      = 5
	minKeywordLength = 4
	keywordCutset    = ".,!?;:"
)

var stopwords = map[string]struct{}{
	"o": {}, "a": {}, "de": {}, "para": {}, "com": {}, "em": {}, "que": {}, "e": {},
	"é": {}, "do": {}, "da": {}, "ou": {}, "na": {}, "no": {}, "um": {}, "uma": {},
	"os": {}, "as": {}, "dos": {}, "das": {}, "por": {}, "foi": {}, "seja": {},
	"seu": {}, "sua": {}, "como": {}, "se": {}, "não": {}, "ele": {}, "ela": {}, "eu": {},
}

// ExtractKeywords returns up to five distinct keywords of text in order of first appearance.
func ExtractKeywords(text string) []string {
	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, keywordCutset)
		if utf8.RuneCountInString(token) < minKeywordLength {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
