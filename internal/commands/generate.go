package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/importer"
	"github.com/fiscmind/fiscmind/internal/logger"
	"github.com/fiscmind/fiscmind/internal/model"
	"github.com/fiscmind/fiscmind/internal/render"
	"github.com/fiscmind/fiscmind/internal/runlog"
	"github.com/fiscmind/fiscmind/internal/statements"
)

type generateFlags struct {
	standard  string
	currency  string
	format    string
	out       string
	overrides []string
	noLog     bool
	commit    bool
	strict    bool
}

func newGenerateCommand(repoDir *string) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate [trial-balance]",
		Short: "Generate financial statements from a trial balance file",
		Long: `Generate financial statements from a trial balance file.

Without a file, every CSV and XLSX file in import/ is processed: statements are
written to exports/ and each input is moved to import/processed/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*repoDir)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return runImports(cmd, p, f)
			}
			return runGenerate(cmd, p, args[0], f, false)
		},
	}

	cmd.Flags().StringVar(&f.standard, "standard", "", "presentation standard (IFRS or ASC); overrides the config")
	cmd.Flags().StringVar(&f.currency, "currency", "", "reporting currency; overrides the config")
	cmd.Flags().StringVar(&f.format, "format", string(render.FormatText), "output format (text, csv, xlsx, pdf, json)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout, or exports/ for xlsx and pdf)")
	cmd.Flags().StringArrayVar(&f.overrides, "override", nil, "cash flow override as name=section (repeatable)")
	cmd.Flags().BoolVar(&f.noLog, "no-log", false, "do not append the run to logs/generation-log.csv")
	cmd.Flags().BoolVar(&f.commit, "commit", false, "commit the output and generation log to git")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when the trial balance has any issue")

	return cmd
}

func runImports(cmd *cobra.Command, p *project, f generateFlags) error {
	if f.out != "" {
		return errors.New("--out cannot be used without a trial balance file")
	}
	files, err := importer.Scan(p.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no trial balance files in %s", filepath.Join(p.root, "import"))
	}

	log := logger.FromContext(cmd.Context())
	for _, file := range files {
		fileLog := logger.WithFields(log, map[string]any{"file": file.Name})
		ctx := logger.WithContext(cmd.Context(), fileLog)
		cmd.SetContext(ctx)

		if err := runGenerate(cmd, p, file.Path, f, true); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
		if err := importer.MarkProcessed(p.root, file.Name); err != nil {
			return err
		}
		fileLog.Info().Msg("processed")
	}
	return nil
}

// runGenerate produces statements for one file. toExports forces the output
// into exports/ whatever the format.
func runGenerate(cmd *cobra.Command, p *project, path string, f generateFlags, toExports bool) error {
	log := logger.FromContext(cmd.Context())

	format, err := render.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if f.standard != "" {
		p.cfg.Reporting.Standard = f.standard
	}
	if f.currency != "" {
		p.cfg.Reporting.Currency = f.currency
	}
	if err := p.applyOverrides(f.overrides); err != nil {
		return err
	}
	if err := p.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	overrides, _ := p.cfg.Overrides()
	rates, _ := p.cfg.RateTable()

	entries, err := importer.DefaultRegistry().ParseFile(path)
	if err != nil {
		return err
	}
	log.Debug().Str("file", path).Int("entries", len(entries)).Msg("parsed trial balance")

	issues := statements.Check(entries, p.chart)
	for _, iss := range issues {
		log.Warn().Str("kind", string(iss.Kind)).Str("account", iss.Account).Msg(iss.Description)
	}
	if f.strict && len(issues) > 0 {
		return fmt.Errorf("trial balance has %d issue(s): %w", len(issues), issues[0])
	}

	gen := statements.NewGenerator(p.chart,
		statements.WithRateFetcher(p.fetcher()),
		statements.WithLogger(log),
	)
	bundle, err := gen.Generate(cmd.Context(), entries, statements.Options{
		Standard:          p.cfg.Reporting.Standard,
		ReportingCurrency: p.cfg.Reporting.Currency,
		Rates:             rates,
		ClassifyOverrides: overrides,
	})
	if err != nil {
		return err
	}
	if n := len(bundle.Unmapped.Accounts); n > 0 {
		log.Warn().Int("accounts", n).Str("total", bundle.Unmapped.Total.String()).Msg("unmapped accounts excluded from statements")
	}

	out := f.out
	if out != "" {
		if out, err = filepath.Abs(out); err != nil {
			return fmt.Errorf("resolving --out: %w", err)
		}
	}
	if out == "" && (toExports || format == render.FormatXLSX || format == render.FormatPDF) {
		out = defaultExportPath(p.root, path, bundle.Standard, format)
	}
	if err := writeBundle(cmd, bundle, format, out); err != nil {
		return err
	}

	if !f.noLog {
		if err := appendRun(p, path, out, format, len(entries), bundle); err != nil {
			log.Warn().Err(err).Msg("failed to write generation log")
		}
	}
	if !f.commit {
		return nil
	}
	return commitRun(cmd, p, path, out, f.noLog)
}

func appendRun(p *project, path, out string, format render.Format, entries int, bundle *model.Bundle) error {
	return runlog.Append(p.root, []runlog.Entry{{
		Timestamp: time.Now().UTC(),
		RunID:     runlog.NewRunID(),
		Source:    filepath.Base(path),
		Standard:  string(bundle.Standard),
		Currency:  bundle.Currency,
		Format:    string(format),
		Entries:   entries,
		Unmapped:  len(bundle.Unmapped.Accounts),
		NetIncome: bundle.IncomeStatement.NetIncome,
		Output:    out,
	}})
}

func commitRun(cmd *cobra.Command, p *project, source, out string, noLog bool) error {
	var paths []string
	if out != "" {
		paths = append(paths, out)
	}
	if !noLog {
		paths = append(paths, runlog.Path(p.root))
	}
	if len(paths) == 0 {
		return errors.New("--commit has nothing to commit (output went to stdout and --no-log is set)")
	}

	repo, err := p.repo()
	if err != nil {
		return err
	}
	hash, err := repo.Commit(cmd.Context(), "generate: "+filepath.Base(source), paths...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Committed %s\n", hash)
	return nil
}

func defaultExportPath(root, source string, std model.Standard, format render.Format) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name := fmt.Sprintf("%s-%s%s", stem, strings.ToLower(string(std)), format.Extension())
	return filepath.Join(root, "exports", name)
}

func writeBundle(cmd *cobra.Command, b *model.Bundle, format render.Format, out string) error {
	if out == "" {
		return render.Render(cmd.OutOrStdout(), b, format)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, b, format); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
