package bootstrap

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/dreamer/internal/config"
	"github.com/at-ishikawa/dreamer/internal/interpretation/rapidapi"
	"github.com/at-ishikawa/dreamer/internal/meaning"
	"github.com/at-ishikawa/dreamer/internal/translation"
	"github.com/at-ishikawa/dreamer/internal/translation/google"
)

// Resolver is a configured meaning resolver together with the clients it owns.
type Resolver struct {
	*meaning.Resolver
	closers []func() error
}

// Close releases the HTTP clients of the resolver.
func (r *Resolver) Close() error {
	var errs []error
	for _, closeFn := range r.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadDictionary returns the dictionary file of cfg, or the embedded one.
func LoadDictionary(cfg config.DictionaryConfig) (*meaning.Dictionary, error) {
	if cfg.Path == "" {
		return meaning.DefaultDictionary()
	}
	return meaning.LoadDictionary(cfg.Path)
}

// ResolverOptions converts the resolver section of the configuration.
func ResolverOptions(cfg config.ResolverConfig) (meaning.Options, error) {
	opts := meaning.DefaultOptions()
	opts.BaseLanguage = cfg.BaseLanguage
	if len(cfg.SupportedLanguages) > 0 {
		opts.SupportedLanguages = cfg.SupportedLanguages
	}
	if cfg.CacheSize > 0 {
		opts.CacheSize = cfg.CacheSize
	}
	opts.FuzzyThreshold = cfg.FuzzyThreshold

	if len(cfg.TierOrder) > 0 {
		order := make(meaning.TierOrder, 0, len(cfg.TierOrder))
		for _, name := range cfg.TierOrder {
			tier, err := meaning.ParseTier(name)
			if err != nil {
				return meaning.Options{}, fmt.Errorf("meaning.ParseTier > %w", err)
			}
			order = append(order, tier)
		}
		opts.TierOrder = order
	}
	return opts, nil
}

// NewResolver wires the dictionary, the RapidAPI client, the translator and
// the fuzzy matcher described by cfg. extra options are applied last.
func NewResolver(cfg *config.Config, extra ...meaning.Option) (*Resolver, error) {
	dictionary, err := LoadDictionary(cfg.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("LoadDictionary > %w", err)
	}
	opts, err := ResolverOptions(cfg.Resolver)
	if err != nil {
		return nil, fmt.Errorf("ResolverOptions > %w", err)
	}

	result := &Resolver{}
	var options []meaning.Option

	if rapidAPI := cfg.Interpretation.RapidAPI; rapidAPI.Enabled() {
		options = append(options, meaning.WithInterpreter(rapidapi.NewClient(rapidapi.Config{
			Host:              rapidAPI.Host,
			Key:               rapidAPI.Key,
			Timeout:           rapidAPI.Timeout,
			TLSVerify:         rapidAPI.TLSVerify,
			RequestsPerSecond: rapidAPI.RequestsPerSecond,
			Burst:             rapidAPI.Burst,
		})))
	}

	if cfg.Translation.Enabled {
		client := google.NewClient(google.Config{
			BaseURL:          cfg.Translation.BaseURL,
			Timeout:          cfg.Translation.Timeout,
			MaxRetryAttempts: cfg.Translation.MaxRetryAttempts,
		})
		result.closers = append(result.closers, client.Close)

		var translator translation.Translator = client
		if cfg.Translation.CacheSize > 0 {
			cached, err := translation.NewCached(client, cfg.Translation.CacheSize)
			if err != nil {
				_ = result.Close()
				return nil, fmt.Errorf("translation.NewCached > %w", err)
			}
			translator = cached
		}
		options = append(options, meaning.WithTranslator(translator))
	}

	if !cfg.Resolver.FuzzyEnabled {
		options = append(options, meaning.WithMatcher(meaning.NoopMatcher{}))
	}

	resolver, err := meaning.NewResolver(dictionary, opts, append(options, extra...)...)
	if err != nil {
		_ = result.Close()
		return nil, fmt.Errorf("meaning.NewResolver > %w", err)
	}
	result.Resolver = resolver
	return result, nil
}
