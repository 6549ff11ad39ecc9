package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/buildinfo"
	"github.com/fiscmind/fiscmind/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string
	var logFormat string
	var repoDir string

	rootCmd := &cobra.Command{
		Use:     "fiscmind",
		Short:   "Financial statements from a trial balance",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("parsing --log-level: %w", err)
			}
			var log zerolog.Logger
			switch logFormat {
			case "console":
				log = logger.New(level)
			case "json":
				log = logger.NewWithWriter(os.Stderr).Level(level)
			default:
				return fmt.Errorf("unknown --log-format %q (want console or json)", logFormat)
			}

			// A missing .env is normal; anything else is worth a warning.
			if err := godotenv.Load(filepath.Join(repoDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Msg("loading .env")
			}

			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log output format (console, json)")
	rootCmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "fiscmind directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newGenerateCommand(&repoDir))
	rootCmd.AddCommand(newSummaryCommand(&repoDir))
	rootCmd.AddCommand(newClassifyCommand(&repoDir))
	rootCmd.AddCommand(newRatesCommand(&repoDir))
	rootCmd.AddCommand(newServeCommand(&repoDir))

	return rootCmd
}
