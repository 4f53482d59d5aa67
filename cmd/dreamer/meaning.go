package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dreamer/internal/meaning"
	"github.com/at-ishikawa/dreamer/internal/report"
)

func newKeywordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords <text>",
		Short: "Extract the keywords of a dream text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, keyword := range meaning.ExtractKeywords(strings.Join(args, " ")) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), keyword); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newMeaningCommand() *cobra.Command {
	var lang string
	var tiers meaning.TierOrder

	command := &cobra.Command{
		Use:   "meaning <word>",
		Short: "Resolve the meaning of a dream keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("tiers") {
				cfg.Resolver.TierOrder = make([]string, 0, len(tiers))
				for _, tier := range tiers {
					cfg.Resolver.TierOrder = append(cfg.Resolver.TierOrder, tier.String())
				}
			}

			resolver, err := newResolver(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = resolver.Close()
			}()

			entry := resolver.Resolve(cmd.Context(), strings.Join(args, " "), lang)
			if err := printEntry(cmd.OutOrStdout(), entry); err != nil {
				return err
			}
			if entry.Source == meaning.SourceError {
				return fmt.Errorf("invalid word: %q", strings.Join(args, " "))
			}
			return nil
		},
	}
	command.Flags().StringVar(&lang, "lang", "", "Language of the meaning, like pt or en-US")
	command.Flags().Var(&tiers, "tiers", fmt.Sprintf("Lookup tiers in order: remote-first, local-first, or a comma separated list of %v", meaning.Tiers))
	return command
}

func newInterpretCommand() *cobra.Command {
	var lang string
	var reportFile string
	var toPDF bool

	command := &cobra.Command{
		Use:   "interpret <text>",
		Short: "Resolve the meanings of every keyword in a dream text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toPDF && reportFile == "" {
				return fmt.Errorf("--pdf requires --report")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			resolver, err := newResolver(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = resolver.Close()
			}()

			text := strings.Join(args, " ")
			result := resolver.Interpret(cmd.Context(), "", text, lang)
			if err := printMeanings(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if reportFile == "" {
				return nil
			}

			writer := report.NewWriter(cfg.Reports.Template, cfg.Reports.OutputDirectory)
			markdownPath, err := writer.WriteMarkdown(reportFile, "", text, result)
			if err != nil {
				return fmt.Errorf("writer.WriteMarkdown > %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", markdownPath); err != nil {
				return err
			}
			if !toPDF {
				return nil
			}

			pdfPath, err := report.ConvertToPDF(markdownPath)
			if err != nil {
				return fmt.Errorf("report.ConvertToPDF > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "PDF: %s\n", pdfPath)
			return err
		},
	}
	command.Flags().StringVar(&lang, "lang", "", "Language of the meanings, like pt or en-US")
	command.Flags().StringVar(&reportFile, "report", "", "Write a markdown report to this file, relative to the reports directory")
	command.Flags().BoolVar(&toPDF, "pdf", false, "Also convert the report to PDF")
	return command
}
