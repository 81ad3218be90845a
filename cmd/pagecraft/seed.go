package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/pagecraft"
	"github.com/eringen/pagecraft/content"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>...",
	Short: "Load categories and posts into the local content database",
	Long: `seed upserts the categories and posts of each YAML or JSON file into the
SQLite content database used when no content API is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := content.NewStore(cfg.ContentDatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			f, err := pagecraft.ParseContent(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := pagecraft.SeedContent(cmd.Context(), store, f); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("seeded %d categories and %d posts from %s\n", len(f.Categories), len(f.Posts), path)
		}
		return nil
	},
}
