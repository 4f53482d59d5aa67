package assets

import (
	_ "embed"
)

// DefaultDictionary is the built-in Portuguese dream dictionary in YAML.
//
//go:embed dictionaries/pt.yml
var DefaultDictionary []byte
