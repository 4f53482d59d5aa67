package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dreamer/internal/bootstrap"
	"github.com/at-ishikawa/dreamer/internal/translation"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages meanings can be requested in",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			opts, err := bootstrap.ResolverOptions(cfg.Resolver)
			if err != nil {
				return err
			}
			for _, code := range opts.SupportedLanguages {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, translation.LanguageName(code)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and the dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			dictionary, err := bootstrap.LoadDictionary(cfg.Dictionary)
			if err != nil {
				return fmt.Errorf("bootstrap.LoadDictionary > %w", err)
			}
			resolver, err := newResolver(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = resolver.Close()
			}()

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Dictionary: %d keyword(s) in %s\n", dictionary.Len(), dictionary.Language()); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "Tiers: %s\n", resolver.Tiers()); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "Remote lookups: %t\n", resolver.RemoteEnabled()); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "Translation: %t\n", cfg.Translation.Enabled); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, "Configuration is valid.")
			return err
		},
	}
}
