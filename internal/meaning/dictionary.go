package meaning

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dreamer/internal/assets"
)

// DictionaryEntry is one keyword of a dictionary file.
type DictionaryEntry struct {
	Keyword string `yaml:"keyword"`
	Meaning string `yaml:"meaning"`
}

type dictionaryFile struct {
	Language string            `yaml:"language"`
	Entries  []DictionaryEntry `yaml:"entries"`
}

type dictionaryKey struct {
	keyword  string
	stripped string
	meaning  string
}

// Dictionary is an immutable, ordered keyword to meaning mapping in a single language.
type Dictionary struct {
	language string
	keys     []dictionaryKey
	// bySpecificity holds indexes into keys, longest keyword first.
	bySpecificity []int
	byStripped    map[string]int
}

// DefaultDictionary parses the embedded Portuguese dictionary.
func DefaultDictionary() (*Dictionary, error) {
	dictionary, err := ParseDictionary(assets.DefaultDictionary)
	if err != nil {
		return nil, fmt.Errorf("ParseDictionary > %w", err)
	}
	return dictionary, nil
}

// LoadDictionary reads a dictionary YAML file.
func LoadDictionary(path string) (*Dictionary, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	dictionary, err := ParseDictionary(contents)
	if err != nil {
		return nil, fmt.Errorf("ParseDictionary(%s) > %w", path, err)
	}
	return dictionary, nil
}

// ParseDictionary parses a dictionary YAML document.
// Keywords are normalized; a keyword that appears twice keeps its first meaning.
func ParseDictionary(contents []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}
	if file.Language == "" {
		return nil, errors.New("dictionary language is required")
	}
	if len(file.Entries) == 0 {
		return nil, errors.New("dictionary has no entries")
	}

	dictionary := &Dictionary{
		language:   Normalize(file.Language),
		byStripped: make(map[string]int, len(file.Entries)),
	}
	for i, entry := range file.Entries {
		keyword := Normalize(entry.Keyword)
		if keyword == "" {
			return nil, fmt.Errorf("entries[%d]: keyword is required", i)
		}
		if entry.Meaning == "" {
			return nil, fmt.Errorf("entries[%d] (%s): meaning is required", i, keyword)
		}
		stripped := StripAccents(keyword)
		if _, ok := dictionary.byStripped[stripped]; ok {
			continue
		}
		dictionary.byStripped[stripped] = len(dictionary.keys)
		dictionary.keys = append(dictionary.keys, dictionaryKey{
			keyword:  keyword,
			stripped: stripped,
			meaning:  entry.Meaning,
		})
	}

	dictionary.bySpecificity = make([]int, len(dictionary.keys))
	for i := range dictionary.keys {
		dictionary.bySpecificity[i] = i
	}
	sort.SliceStable(dictionary.bySpecificity, func(i, j int) bool {
		a := dictionary.keys[dictionary.bySpecificity[i]].keyword
		b := dictionary.keys[dictionary.bySpecificity[j]].keyword
		return utf8.RuneCountInString(a) > utf8.RuneCountInString(b)
	})
	return dictionary, nil
}

// Language is the language the meanings are written in.
func (d *Dictionary) Language() string {
	return d.language
}

// Len returns the number of keywords.
func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Keywords returns the keywords in file order.
func (d *Dictionary) Keywords() []string {
	keywords := make([]string, 0, len(d.keys))
	for _, key := range d.keys {
		keywords = append(keywords, key.keyword)
	}
	return keywords
}

// Lookup returns the meaning of a keyword in its exact or accent-stripped form.
func (d *Dictionary) Lookup(word string) (string, bool) {
	stripped := StripAccents(word)
	for _, key := range d.keys {
		if key.keyword == word || key.stripped == stripped {
			return key.meaning, true
		}
	}
	return "", false
}

func (d *Dictionary) lookupStripped(stripped string) (string, bool) {
	i, ok := d.byStripped[stripped]
	if !ok {
		return "", false
	}
	return d.keys[i].meaning, true
}

func (d *Dictionary) strippedKeywords() []string {
	keywords := make([]string, 0, len(d.keys))
	for _, key := range d.keys {
		keywords = append(keywords, key.stripped)
	}
	return keywords
}
