// Package meaning resolves dream keywords to meanings through an ordered chain
// of remote and local lookup tiers.
package meaning

// Source tells where the meaning of an Entry came from.
type Source string

const (
	SourceLocal          Source = "local"
	SourceLocalSubstring Source = "local_substring"
	SourceLocalFuzzy     Source = "local_fuzzy"
	SourceLocalToken     Source = "local_token"
	SourceRemote         Source = "remote"
	SourceFallback       Source = "fallback"
	SourceError          Source = "error"
)

// IsLocal reports whether the meaning came from the local dictionary.
func (s Source) IsLocal() bool {
	switch s {
	case SourceLocal, SourceLocalSubstring, SourceLocalFuzzy, SourceLocalToken:
		return true
	}
	return false
}

// Entry is the resolved meaning of one keyword.
type Entry struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Source   Source `json:"source"`
	Language string `json:"language"`
}

// DreamMeanings is the aggregated result for a whole dream text.
type DreamMeanings struct {
	Keywords []string `json:"keywords"`
	Meanings []Entry  `json:"meanings"`
	Language string   `json:"language"`
}

const (
	fallbackMeaningFormat = `Significado de "%s" não encontrado. Tente outras palavras-chave relacionadas ao seu sonho.`
	invalidWordMeaning    = "Palavra inválida"
)
