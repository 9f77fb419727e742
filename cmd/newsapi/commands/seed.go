package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/seed"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	seedDir    string
	seedReset  bool
	jsonOutput bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the NDJSON fixture set",
	Long: `Load topics, users, articles and comments from NDJSON files.

Examples:
  newsapi seed                          # Load ./testdata/seed into the current schema
  newsapi seed --reset                  # Drop and recreate the schema first
  newsapi seed --dir ./data --json      # Print the per-resource reports as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		if seedReset {
			if err := db.Reset(cfg.MigrationsPath); err != nil {
				return err
			}
		} else if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			return err
		}

		dir := cfg.Seed.Dir
		if seedDir != "" {
			dir = seedDir
		}

		loader := seed.NewLoader(repository.New(db), auth.NewBcryptHasher(0), cfg.Seed.BatchSize, log)
		reports, err := loader.Run(cmd.Context(), dir)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}
		for _, r := range reports {
			fmt.Printf("%-10s total=%d inserted=%d failed=%d (%dms)\n", r.Resource, r.Total, r.Inserted, r.Failed, r.DurationMs)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "Fixture directory (overrides SEED_DIR)")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Drop and recreate all tables before loading")
	seedCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	rootCmd.AddCommand(seedCmd)
}
