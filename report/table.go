package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rustyeddy/nodesim/sim"
)

// WriteTable writes days as a right-aligned text table with a header.
func WriteTable(w io.Writer, days []sim.DayResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if _, err := fmt.Fprintln(tw, strings.Join(Titles(), "\t")+"\t"); err != nil {
		return err
	}
	for _, d := range days {
		if _, err := fmt.Fprintln(tw, strings.Join(Row(d), "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
