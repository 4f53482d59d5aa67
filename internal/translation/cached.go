package translation

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of translations kept by NewCached.
const DefaultCacheSize = 500

type cacheKey struct {
	text, targetLanguage, sourceLanguage string
}

// Cached memoizes successful translations of another Translator.
// Failures are never cached, so the next call retries upstream.
type Cached struct {
	next  Translator
	cache *lru.Cache[cacheKey, string]
}

var _ Translator = (*Cached)(nil)

func NewCached(next Translator, size int) (*Cached, error) {
	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("lru.New > %w", err)
	}
	return &Cached{
		next:  next,
		cache: cache,
	}, nil
}

func (c *Cached) Translate(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	key := cacheKey{text: text, targetLanguage: targetLanguage, sourceLanguage: sourceLanguage}
	if translated, ok := c.cache.Get(key); ok {
		return translated, nil
	}

	translated, err := c.next.Translate(ctx, text, targetLanguage, sourceLanguage)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, translated)
	return translated, nil
}

// Len returns the number of cached translations.
func (c *Cached) Len() int {
	return c.cache.Len()
}
