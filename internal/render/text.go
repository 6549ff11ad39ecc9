package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fiscmind/fiscmind/internal/model"
)

// Text writes b as aligned plain text. Amounts use the bundle currency's
// symbol when it is a known ISO 4217 code.
func Text(w io.Writer, b *model.Bundle) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Standard: %s\tCurrency: %s\n", b.Standard, currencyLabel(b.Currency))
	for _, s := range Sections(b) {
		fmt.Fprintf(tw, "\n%s\n", s.Title)
		for _, l := range s.Lines {
			label := "  " + l.Label
			if l.Total {
				label = l.Label
			}
			fmt.Fprintf(tw, "%s\t%16s\n", label, Amount(l.Amount, b.Currency))
		}
	}
	return tw.Flush()
}

func currencyLabel(code string) string {
	if code == "" {
		return "(as entered)"
	}
	return code
}
