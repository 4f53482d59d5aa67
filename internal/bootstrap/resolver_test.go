package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dreamer/internal/config"
	"github.com/at-ishikawa/dreamer/internal/meaning"
	"github.com/at-ishikawa/dreamer/internal/testutil"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Translation: config.TranslationConfig{
			BaseURL:   "https://translate.googleapis.com",
			Timeout:   time.Second,
			CacheSize: 10,
		},
		Resolver: config.ResolverConfig{
			CacheSize:      200,
			FuzzyEnabled:   true,
			FuzzyThreshold: 65,
			TierOrder:      []string{"remote", "exact", "substring", "fuzzy", "token"},
		},
	}
}

type recordedSources struct {
	count atomic.Int32
}

func (r *recordedSources) RecordResolution(meaning.Source, bool) {
	r.count.Add(1)
}

func TestResolverOptions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ResolverConfig
		want    meaning.Options
		wantErr bool
	}{
		{
			name: "empty section keeps the defaults",
			want: func() meaning.Options {
				opts := meaning.DefaultOptions()
				opts.FuzzyThreshold = 0
				return opts
			}(),
		},
		{
			name: "every field is applied",
			cfg: config.ResolverConfig{
				BaseLanguage:       "en",
				SupportedLanguages: []string{"en", "pt"},
				CacheSize:          10,
				FuzzyThreshold:     80,
				TierOrder:          []string{"exact", "remote"},
			},
			want: meaning.Options{
				BaseLanguage:       "en",
				RemoteLanguage:     "en",
				SupportedLanguages: []string{"en", "pt"},
				TierOrder:          meaning.TierOrder{meaning.TierExact, meaning.TierRemote},
				FuzzyThreshold:     80,
				CacheSize:          10,
			},
		},
		{
			name:    "unknown tier",
			cfg:     config.ResolverConfig{TierOrder: []string{"exact", "guess"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolverOptions(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewResolver(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *testing.T, cfg *config.Config)

		wantErr       bool
		wantRemote    bool
		wantBase      string
		word          string
		wantSource    meaning.Source
		wantLanguages []string
	}{
		{
			name:       "local tiers only",
			wantBase:   "pt",
			word:       "sangeu",
			wantSource: meaning.SourceLocalFuzzy,
		},
		{
			name: "fuzzy tier disabled",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Resolver.FuzzyEnabled = false
			},
			wantBase:   "pt",
			word:       "sangeu",
			wantSource: meaning.SourceFallback,
		},
		{
			name: "credential enables the remote tier",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Interpretation.RapidAPI = config.RapidAPIConfig{Key: "secret", Timeout: time.Second}
				cfg.Resolver.TierOrder = []string{"exact", "remote"}
			},
			wantRemote: true,
			wantBase:   "pt",
			word:       "água",
			wantSource: meaning.SourceLocal,
		},
		{
			name: "custom dictionary",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Dictionary.Path = testutil.WriteDictionary(t, filepath.Join(t.TempDir(), "en.yml"), "en", []meaning.DictionaryEntry{
					{Keyword: "water", Meaning: "emotions"},
				})
				cfg.Resolver.SupportedLanguages = []string{"en", "pt"}
			},
			wantBase:      "en",
			word:          "water",
			wantSource:    meaning.SourceLocal,
			wantLanguages: []string{"en", "pt"},
		},
		{
			name: "missing dictionary file",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Dictionary.Path = filepath.Join(t.TempDir(), "missing.yml")
			},
			wantErr: true,
		},
		{
			name: "invalid tier order",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Resolver.TierOrder = []string{"exact", "exact"}
			},
			wantErr: true,
		},
		{
			name: "base language is not supported",
			modify: func(t *testing.T, cfg *config.Config) {
				cfg.Resolver.SupportedLanguages = []string{"en"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			if tt.modify != nil {
				tt.modify(t, cfg)
			}
			recorder := &recordedSources{}

			resolver, err := NewResolver(cfg, meaning.WithRecorder(recorder))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, resolver.Close())
			}()

			assert.Equal(t, tt.wantRemote, resolver.RemoteEnabled())
			assert.Equal(t, tt.wantBase, resolver.BaseLanguage())
			if tt.wantLanguages != nil {
				assert.Equal(t, tt.wantLanguages, resolver.Languages())
			}

			got := resolver.Resolve(context.Background(), tt.word, "")
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, int32(1), recorder.count.Load())
		})
	}
}

func TestNewResolver_Translation(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		assert.Equal(t, "pt", r.URL.Query().Get("sl"))
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[["Water means emotions.","Água...",null,null,10]],null,"pt"]`))
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.Translation.Enabled = true
	cfg.Translation.BaseURL = server.URL

	resolver, err := NewResolver(cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, resolver.Close())
	}()

	got := resolver.Resolve(context.Background(), "água", "en-US")
	assert.Equal(t, meaning.Entry{Word: "água", Meaning: "Water means emotions.", Source: meaning.SourceLocal, Language: "en"}, got)

	resolver.ClearCache()
	_ = resolver.Resolve(context.Background(), "água", "en")
	assert.Equal(t, int32(1), calls.Load(), "the second translation comes from the translation cache")
}
