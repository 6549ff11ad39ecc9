package render

import (
	"encoding/csv"
	"io"

	"github.com/fiscmind/fiscmind/internal/model"
)

// CSV writes b as section blocks: a title line, one label,amount record per
// line, and an empty line between sections.
func CSV(w io.Writer, b *model.Bundle) error {
	cw := csv.NewWriter(w)
	for i, s := range Sections(b) {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{s.Title}); err != nil {
			return err
		}
		for _, l := range s.Lines {
			if err := cw.Write([]string{l.Label, Fixed(l.Amount)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
