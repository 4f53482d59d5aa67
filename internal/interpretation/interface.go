package interpretation

import (
	"context"
	"errors"
)

//go:generate mockgen -source=interface.go -destination=../mocks/interpretation/mock_client.go -package=mock_interpretation

// NativeLanguage is the language remote interpretation services answer in.
const NativeLanguage = "en"

// ErrNoResult is wrapped by every outcome where the service produced nothing usable:
// transport failures, timeouts, unexpected statuses, and empty or malformed payloads.
var ErrNoResult = errors.New("no interpretation result")

// Client looks up the meaning of a dream symbol in a remote service
type Client interface {
	// Interpret returns the meaning text for symbol in NativeLanguage.
	Interpret(ctx context.Context, symbol string) (string, error)
}
