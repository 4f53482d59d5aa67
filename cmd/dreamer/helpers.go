package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/dreamer/internal/bootstrap"
	"github.com/at-ishikawa/dreamer/internal/config"
	"github.com/at-ishikawa/dreamer/internal/database"
	"github.com/at-ishikawa/dreamer/internal/meaning"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate > %w", err)
	}
	return db, nil
}

func newResolver(cfg *config.Config) (*bootstrap.Resolver, error) {
	resolver, err := bootstrap.NewResolver(cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap.NewResolver > %w", err)
	}
	return resolver, nil
}

func sourceColor(source meaning.Source) *color.Color {
	switch {
	case source.IsLocal():
		return color.New(color.FgGreen)
	case source == meaning.SourceRemote:
		return color.New(color.FgCyan)
	case source == meaning.SourceFallback:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func printEntry(w io.Writer, entry meaning.Entry) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintf(w, "%s ", entry.Word); err != nil {
		return err
	}
	if _, err := sourceColor(entry.Source).Fprintf(w, "[%s, %s]\n", entry.Source, entry.Language); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  %s\n", entry.Meaning)
	return err
}

func printMeanings(w io.Writer, result meaning.DreamMeanings) error {
	if _, err := fmt.Fprintf(w, "Keywords: %v\n", result.Keywords); err != nil {
		return err
	}
	if len(result.Meanings) == 0 {
		_, err := fmt.Fprintln(w, "No meanings were found.")
		return err
	}
	for _, entry := range result.Meanings {
		if err := printEntry(w, entry); err != nil {
			return err
		}
	}
	return nil
}
