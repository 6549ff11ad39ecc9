package commands

import (
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/config"
	"github.com/fiscmind/fiscmind/internal/currency"
)

func newRatesCommand(repoDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rates [base]",
		Short: "Fetch and print an exchange rate table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*repoDir)
			if err != nil {
				return err
			}

			base := p.cfg.Reporting.Currency
			if len(args) > 0 {
				base = args[0]
			}
			base = currency.Code(base)
			if base == "" {
				return errors.New("no base currency given and reporting.currency is not set")
			}
			if err := config.ValidCurrency(base); err != nil {
				return err
			}

			fetcher := p.fetcher()
			if fetcher == nil {
				return fmt.Errorf("no FX endpoint: set rates.url or %s", config.EnvRatesURL)
			}
			rates, err := fetcher.FetchRates(cmd.Context(), base)
			if err != nil {
				return err
			}

			codes := make([]string, 0, len(rates))
			for code := range rates {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, code := range codes {
				fmt.Fprintf(tw, "%s\t%s\n", code, rates[code].String())
			}
			return tw.Flush()
		},
	}
}
