package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/importer"
	"github.com/fiscmind/fiscmind/internal/render"
	"github.com/fiscmind/fiscmind/internal/statements"
)

func newSummaryCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <trial-balance>",
		Short: "Print debit minus credit totals per classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*repoDir)
			if err != nil {
				return err
			}
			entries, err := importer.DefaultRegistry().ParseFile(args[0])
			if err != nil {
				return err
			}

			s := statements.Summarize(entries, p.chart)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			for _, k := range s.Keys() {
				fmt.Fprintf(tw, "%s\t%s\t\n", k, render.Fixed(s[k]))
			}
			return tw.Flush()
		},
	}
}
