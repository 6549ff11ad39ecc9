package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/accounts"
	"github.com/fiscmind/fiscmind/internal/config"
	"github.com/fiscmind/fiscmind/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var standard string
	var reportingCurrency string
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new fiscmind directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, standard, reportingCurrency); err != nil {
				return err
			}
			if !withGit {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized fiscmind directory at %s\n", absDir)
				return nil
			}

			hash, err := initGit(cmd.Context(), absDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized fiscmind directory at %s (%s)\n", absDir, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&standard, "standard", "IFRS", "presentation standard (IFRS or ASC)")
	cmd.Flags().StringVar(&reportingCurrency, "currency", "USD", "reporting currency (ISO 4217)")
	cmd.Flags().BoolVar(&withGit, "git", false, "initialize a git repository and commit the new files")

	return cmd
}

func runInit(dir, standard, reportingCurrency string) error {
	cfg := config.Default(standard, reportingCurrency)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(config.Path(dir)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	dirs := []string{
		"accounts",
		"logs",
		"exports",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(config.Path(dir), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.DefaultChart().Save(accounts.Path(dir)); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := ".env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	return nil
}

func initGit(ctx context.Context, dir string) (string, error) {
	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		return "", err
	}
	repo := &gitops.Repo{Dir: dir, Author: gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}}
	if err := repo.Init(ctx); err != nil {
		return "", err
	}
	hash, err := repo.Commit(ctx, "init: fiscmind directory")
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
