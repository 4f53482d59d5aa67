package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dreamer/internal/dream"
)

func newDreamCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "dream",
		Short: "Manage stored dreams",
	}
	command.AddCommand(
		newDreamAddCommand(),
		newDreamListCommand(),
		newDreamMeaningsCommand(),
	)
	return command
}

func newDreamAddCommand() *cobra.Command {
	var title, description, dreamType string
	var tags []string

	command := &cobra.Command{
		Use:   "add",
		Short: "Store a dream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
				return fmt.Errorf("--title or --description is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			newDream := &dream.Dream{
				Title:       strings.TrimSpace(title),
				Description: strings.TrimSpace(description),
				DreamType:   dreamType,
				Tags:        dream.JoinTags(tags),
			}
			if err := dream.NewDBDreamRepository(db).Create(cmd.Context(), newDream); err != nil {
				return fmt.Errorf("DreamRepository.Create > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created dream %d\n", newDream.ID)
			return err
		},
	}
	command.Flags().StringVar(&title, "title", "", "Title of the dream")
	command.Flags().StringVar(&description, "description", "", "What happened in the dream")
	command.Flags().StringVar(&dreamType, "type", dream.DefaultDreamType, "Type of the dream, like normal, lucid or nightmare")
	command.Flags().StringSliceVar(&tags, "tags", nil, "Comma separated tags")
	return command
}

func newDreamListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored dreams, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			dreams, err := dream.NewDBDreamRepository(db).FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("DreamRepository.FindAll > %w", err)
			}
			if len(dreams) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No dreams found.")
				return err
			}
			for _, d := range dreams {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					d.ID,
					d.CreatedAt.Local().Format(time.DateTime),
					d.DreamType,
					d.Title,
					strings.Join(d.TagList(), ", "),
				); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newDreamMeaningsCommand() *cobra.Command {
	var lang string
	var save bool

	command := &cobra.Command{
		Use:   "meanings <id>",
		Short: "Resolve the meanings of a stored dream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid dream id: %s", args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			found, err := dream.NewDBDreamRepository(db).FindByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("DreamRepository.FindByID > %w", err)
			}

			resolver, err := newResolver(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = resolver.Close()
			}()

			result := resolver.Interpret(cmd.Context(), found.Title, found.Description, lang)
			if err := printMeanings(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !save {
				return nil
			}

			records := dream.NewMeaningRecords(id, result.Meanings, time.Now().UTC())
			if err := dream.NewDBMeaningRepository(db).BatchUpsert(cmd.Context(), records); err != nil {
				return fmt.Errorf("MeaningRepository.BatchUpsert > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d meaning(s)\n", len(records))
			return err
		},
	}
	command.Flags().StringVar(&lang, "lang", "", "Language of the meanings, like pt or en-US")
	command.Flags().BoolVar(&save, "save", false, "Save the resolved meanings")
	return command
}
