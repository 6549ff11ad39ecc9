package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/model"
)

func newClassifyCommand(repoDir *string) *cobra.Command {
	var major string

	cmd := &cobra.Command{
		Use:   "classify <account>...",
		Short: "Show how account names are classified",
		Long: `Show how account names are classified.

With --major, list the chart accounts of one major category instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if major == "" && len(args) == 0 {
				return errors.New("requires at least 1 account name or --major")
			}
			p, err := openProject(*repoDir)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if major != "" {
				m, err := model.ParseMajorCategory(major)
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "ACCOUNT\tSUB\tSIDE\tCONTRA")
				for _, a := range p.chart.ByMajor(m) {
					c := a.Classification
					fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", a.Name, dash(string(c.Sub)), dash(string(c.Side)), c.Contra)
				}
				return tw.Flush()
			}

			fmt.Fprintln(tw, "ACCOUNT\tMAJOR\tSUB\tSIDE\tCONTRA\tSOURCE")
			for _, name := range args {
				res := p.chart.Resolve(name)
				c := res.Classification
				source := string(res.Source)
				if res.Rule != "" {
					source += ":" + res.Rule
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", name, c.Major, dash(string(c.Sub)), dash(string(c.Side)), c.Contra, source)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&major, "major", "", "list chart accounts of a major category (asset, liability, equity, revenue, expense)")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
