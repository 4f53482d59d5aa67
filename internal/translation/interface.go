// Package translation translates meaning texts between languages.
package translation

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/translation/mock_translator.go -package=mock_translation

// Translator translates text from the source language into the target language.
// Implementations return the error as is; callers decide whether to fall back to the original text.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error)
}

// Noop is used when no translation capability is configured. It returns the text unchanged.
type Noop struct{}

var _ Translator = Noop{}

func (Noop) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
