package referee

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nelhage/santorini/santorini"
)

// Render writes b as a grid of cells, one row per line, with row and
// column numbers.
func Render(out io.Writer, b *santorini.Board) {
	w := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	for r := 0; r < b.Rows(); r++ {
		fmt.Fprintf(w, "%d.\t", r)
		for c := 0; c < b.Cols(); c++ {
			fmt.Fprintf(w, "[%s]\t", b.At(r, c))
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "\t")
	for c := 0; c < b.Cols(); c++ {
		fmt.Fprintf(w, "%d.\t", c)
	}
	fmt.Fprintf(w, "\n")
	w.Flush()
}
