package meaning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"

	"github.com/at-ishikawa/dreamer/internal/interpretation"
	"github.com/at-ishikawa/dreamer/internal/translation"
)

// DefaultCacheSize is the number of (word, language) results kept in memory.
const DefaultCacheSize = 200

// Recorder observes every resolution.
type Recorder interface {
	RecordResolution(source Source, cached bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordResolution(Source, bool) {}

// Options configures a Resolver.
type Options struct {
	// BaseLanguage defaults to the dictionary language.
	BaseLanguage       string
	RemoteLanguage     string
	SupportedLanguages []string
	TierOrder          TierOrder
	FuzzyThreshold     int
	CacheSize          int
}

func DefaultOptions() Options {
	return Options{
		RemoteLanguage:     interpretation.NativeLanguage,
		SupportedLanguages: translation.SupportedCodes(),
		TierOrder:          append(TierOrder{}, DefaultTierOrder...),
		FuzzyThreshold:     DefaultFuzzyThreshold,
		CacheSize:          DefaultCacheSize,
	}
}

type Option func(*Resolver)

// WithInterpreter enables the remote tier. A nil client leaves it disabled.
func WithInterpreter(client interpretation.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

func WithTranslator(translator translation.Translator) Option {
	return func(r *Resolver) {
		if translator != nil {
			r.translator = translator
		}
	}
}

// WithMatcher replaces the fuzzy matcher. Pass NoopMatcher to disable the fuzzy tier.
func WithMatcher(matcher Matcher) Option {
	return func(r *Resolver) {
		if matcher != nil {
			r.matcher = matcher
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(r *Resolver) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

type cacheKey struct {
	word     string
	language string
}

type query struct {
	word     string
	stripped string
	language string
}

type strategy func(ctx context.Context, q query) (Entry, bool)

// Resolver looks up the meaning of dream keywords. It is safe for concurrent use.
type Resolver struct {
	dictionary     *Dictionary
	baseLanguage   string
	remoteLanguage string
	supported      []string
	tiers          TierOrder

	client     interpretation.Client
	translator translation.Translator
	matcher    Matcher
	recorder   Recorder

	strategies []strategy
	cache      *lru.Cache[cacheKey, Entry]
}

func NewResolver(dictionary *Dictionary, opts Options, options ...Option) (*Resolver, error) {
	if dictionary == nil {
		return nil, errors.New("dictionary is required")
	}
	if opts.BaseLanguage == "" {
		opts.BaseLanguage = dictionary.Language()
	}
	if opts.RemoteLanguage == "" {
		opts.RemoteLanguage = interpretation.NativeLanguage
	}
	if len(opts.SupportedLanguages) == 0 {
		opts.SupportedLanguages = translation.SupportedCodes()
	}
	if len(opts.TierOrder) == 0 {
		opts.TierOrder = DefaultTierOrder
	}
	if err := opts.TierOrder.Validate(); err != nil {
		return nil, fmt.Errorf("TierOrder.Validate > %w", err)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if !slices.Contains(opts.SupportedLanguages, opts.BaseLanguage) {
		return nil, fmt.Errorf("base language %s is not a supported language %v", opts.BaseLanguage, opts.SupportedLanguages)
	}

	cache, err := lru.New[cacheKey, Entry](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("lru.New > %w", err)
	}

	r := &Resolver{
		dictionary:     dictionary,
		baseLanguage:   opts.BaseLanguage,
		remoteLanguage: opts.RemoteLanguage,
		supported:      slices.Clone(opts.SupportedLanguages),
		tiers:          slices.Clone(opts.TierOrder),
		translator:     translation.Noop{},
		matcher:        NewLevenshteinMatcher(opts.FuzzyThreshold),
		recorder:       noopRecorder{},
		cache:          cache,
	}
	for _, option := range options {
		option(r)
	}

	for _, tier := range r.tiers {
		switch tier {
		case TierRemote:
			if r.client == nil {
				slog.Default().Debug("remote tier is disabled without an interpretation client")
				continue
			}
			r.strategies = append(r.strategies, r.remote)
		case TierExact:
			r.strategies = append(r.strategies, r.exact)
		case TierSubstring:
			r.strategies = append(r.strategies, r.substring)
		case TierFuzzy:
			r.strategies = append(r.strategies, r.fuzzy)
		case TierToken:
			r.strategies = append(r.strategies, r.token)
		}
	}
	return r, nil
}

// Resolve returns the meaning of word in lang. It never fails: blank words get
// an error entry and words nothing knows about get the fallback entry.
func (r *Resolver) Resolve(ctx context.Context, word, lang string) Entry {
	normalized := Normalize(word)
	resolvedLanguage := r.ResolveLanguage(lang)
	if normalized == "" {
		r.recorder.RecordResolution(SourceError, false)
		return Entry{
			Word:     "",
			Meaning:  invalidWordMeaning,
			Source:   SourceError,
			Language: resolvedLanguage,
		}
	}

	key := cacheKey{word: normalized, language: resolvedLanguage}
	if entry, ok := r.cache.Get(key); ok {
		r.recorder.RecordResolution(entry.Source, true)
		return entry
	}

	q := query{
		word:     normalized,
		stripped: StripAccents(normalized),
		language: resolvedLanguage,
	}
	entry := Entry{
		Word:     normalized,
		Meaning:  fallbackMeaning(normalized),
		Source:   SourceFallback,
		Language: resolvedLanguage,
	}
	for _, try := range r.strategies {
		if found, ok := try(ctx, q); ok {
			entry = found
			break
		}
	}

	r.cache.Add(key, entry)
	r.recorder.RecordResolution(entry.Source, false)
	return entry
}

// ResolveAll resolves every keyword of text, in keyword order.
func (r *Resolver) ResolveAll(ctx context.Context, text, lang string) []Entry {
	return r.resolveKeywords(ctx, ExtractKeywords(text), lang)
}

// Interpret resolves the keywords of a dream's title and description.
func (r *Resolver) Interpret(ctx context.Context, title, description, lang string) DreamMeanings {
	keywords := ExtractKeywords(strings.TrimSpace(title + " " + description))
	return DreamMeanings{
		Keywords: keywords,
		Meanings: r.resolveKeywords(ctx, keywords, lang),
		Language: r.ResolveLanguage(lang),
	}
}

func (r *Resolver) resolveKeywords(ctx context.Context, keywords []string, lang string) []Entry {
	entries := make([]Entry, 0, len(keywords))
	for _, keyword := range keywords {
		entry := r.Resolve(ctx, keyword, lang)
		if entry.Source == SourceError {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ResolveLanguage reduces lang to a supported base language, like pt-BR to pt.
// Blank, malformed and unsupported languages resolve to the base language.
func (r *Resolver) ResolveLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return r.baseLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return r.baseLanguage
	}
	base, _ := tag.Base()
	if code := base.String(); slices.Contains(r.supported, code) {
		return code
	}
	return r.baseLanguage
}

// Languages returns the supported language codes.
func (r *Resolver) Languages() []string {
	return slices.Clone(r.supported)
}

func (r *Resolver) BaseLanguage() string {
	return r.baseLanguage
}

// Tiers returns the configured tier order, including tiers that are disabled.
func (r *Resolver) Tiers() TierOrder {
	return slices.Clone(r.tiers)
}

// RemoteEnabled reports whether an interpretation client is configured.
func (r *Resolver) RemoteEnabled() bool {
	return r.client != nil
}

func (r *Resolver) ClearCache() {
	r.cache.Purge()
}

func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}

func (r *Resolver) remote(ctx context.Context, q query) (Entry, bool) {
	symbol := q.word
	if q.language != r.remoteLanguage {
		symbol = r.translate(ctx, q.word, r.remoteLanguage, q.language)
	}

	text, err := r.client.Interpret(ctx, TitleCase(symbol))
	if err != nil {
		slog.Default().Warn("failed to interpret a keyword remotely",
			"word", q.word,
			"symbol", symbol,
			"error", err,
		)
		return Entry{}, false
	}
	if strings.TrimSpace(text) == "" {
		return Entry{}, false
	}

	if q.language != r.remoteLanguage {
		text = r.translate(ctx, text, q.language, r.remoteLanguage)
	}
	return Entry{
		Word:     q.word,
		Meaning:  text,
		Source:   SourceRemote,
		Language: q.language,
	}, true
}

func (r *Resolver) exact(ctx context.Context, q query) (Entry, bool) {
	meaning, ok := r.dictionary.Lookup(q.word)
	if !ok {
		return Entry{}, false
	}
	return r.localEntry(ctx, q, meaning, SourceLocal), true
}

func (r *Resolver) substring(ctx context.Context, q query) (Entry, bool) {
	for _, i := range r.dictionary.bySpecificity {
		key := r.dictionary.keys[i]
		if strings.Contains(q.stripped, key.stripped) || strings.Contains(key.stripped, q.stripped) {
			return r.localEntry(ctx, q, key.meaning, SourceLocalSubstring), true
		}
	}
	return Entry{}, false
}

func (r *Resolver) fuzzy(ctx context.Context, q query) (Entry, bool) {
	match, score, ok := r.matcher.BestMatch(q.stripped, r.dictionary.strippedKeywords())
	if !ok {
		return Entry{}, false
	}
	meaning, ok := r.dictionary.lookupStripped(match)
	if !ok {
		return Entry{}, false
	}
	slog.Default().Debug("fuzzy match", "word", q.word, "keyword", match, "score", score)
	return r.localEntry(ctx, q, meaning, SourceLocalFuzzy), true
}

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

func (r *Resolver) token(ctx context.Context, q query) (Entry, bool) {
	for _, token := range tokenPattern.FindAllString(q.stripped, -1) {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		if meaning, ok := r.dictionary.lookupStripped(token); ok {
			return r.localEntry(ctx, q, meaning, SourceLocalToken), true
		}
	}
	return Entry{}, false
}

func (r *Resolver) localEntry(ctx context.Context, q query, meaning string, source Source) Entry {
	if q.language != r.dictionary.Language() {
		meaning = r.translate(ctx, meaning, q.language, r.dictionary.Language())
	}
	return Entry{
		Word:     q.word,
		Meaning:  meaning,
		Source:   source,
		Language: q.language,
	}
}

// translate returns text unchanged when the translation fails.
func (r *Resolver) translate(ctx context.Context, text, targetLanguage, sourceLanguage string) string {
	translated, err := r.translator.Translate(ctx, text, targetLanguage, sourceLanguage)
	if err != nil {
		slog.Default().Warn("failed to translate",
			"source", sourceLanguage,
			"target", targetLanguage,
			"error", err,
		)
		return text
	}
	if strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}
