package meaning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionary(t *testing.T) {
	dictionary, err := DefaultDictionary()
	require.NoError(t, err)

	assert.Equal(t, "pt", dictionary.Language())
	assert.Equal(t, 19, dictionary.Len())
	assert.Equal(t, "voar", dictionary.Keywords()[0])

	meaning, ok := dictionary.Lookup("agua")
	require.True(t, ok)
	assert.Equal(t, "Água em sonhos representa emoções, inconsistência e fluidez. Água calma = paz, turbulenta = emoções instáveis.", meaning)

	assert.Equal(t, "morte de alguém", dictionary.keys[dictionary.bySpecificity[0]].keyword)
}

func TestParseDictionary(t *testing.T) {
	tests := []struct {
		name         string
		contents     string
		wantErr      bool
		wantLanguage string
		wantKeywords []string
	}{
		{
			name: "keywords are normalized",
			contents: `language: PT
entries:
  - keyword: " Água "
    meaning: water
  - keyword: Casa
    meaning: house
`,
			wantLanguage: "pt",
			wantKeywords: []string{"água", "casa"},
		},
		{
			name: "the first of duplicated keywords wins",
			contents: `language: pt
entries:
  - keyword: água
    meaning: first
  - keyword: agua
    meaning: second
`,
			wantLanguage: "pt",
			wantKeywords: []string{"água"},
		},
		{
			name:     "language is required",
			contents: "entries:\n  - keyword: casa\n    meaning: house\n",
			wantErr:  true,
		},
		{
			name:     "entries are required",
			contents: "language: pt\n",
			wantErr:  true,
		},
		{
			name:     "keyword is required",
			contents: "language: pt\nentries:\n  - meaning: house\n",
			wantErr:  true,
		},
		{
			name:     "meaning is required",
			contents: "language: pt\nentries:\n  - keyword: casa\n",
			wantErr:  true,
		},
		{
			name:     "invalid yaml",
			contents: "language: [pt",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dictionary, err := ParseDictionary([]byte(tt.contents))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLanguage, dictionary.Language())
			assert.Equal(t, tt.wantKeywords, dictionary.Keywords())
		})
	}
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.yml")
	require.NoError(t, os.WriteFile(path, []byte("language: en\nentries:\n  - keyword: water\n    meaning: Emotions.\n"), 0o644))

	dictionary, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, "en", dictionary.Language())

	meaning, ok := dictionary.Lookup("water")
	assert.True(t, ok)
	assert.Equal(t, "Emotions.", meaning)

	_, err = LoadDictionary(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestDictionary_Lookup(t *testing.T) {
	dictionary, err := DefaultDictionary()
	require.NoError(t, err)

	tests := []struct {
		word   string
		wantOK bool
	}{
		{word: "água", wantOK: true},
		{word: "agua", wantOK: true},
		{word: "perseguicao", wantOK: true},
		{word: "morte de alguém", wantOK: true},
		{word: "morte de", wantOK: false},
		{word: "xilofone", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			_, ok := dictionary.Lookup(tt.word)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
