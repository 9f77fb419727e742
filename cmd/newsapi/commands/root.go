package commands

import (
	"fmt"
	"os"

	"github.com/news-api/internal/config"
	"github.com/news-api/internal/database"
	"github.com/news-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	migrationsDir string
	logLevel      string

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd serves the API when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "newsapi",
	Short: "News API - articles, comments, topics and users over REST",
	Long: `News API serves a news aggregator backend backed by PostgreSQL.

Commands:
  serve    - Run the HTTP server (default)
  migrate  - Apply or roll back schema migrations
  seed     - Load the NDJSON fixture set`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if migrationsDir != "" {
			loaded.MigrationsPath = migrationsDir
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}

		cfg = loaded
		log = logger.New(cfg.Log)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory for migration files (overrides MIGRATIONS_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

// openDatabase connects using the loaded configuration
func openDatabase() (*database.DB, error) {
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
