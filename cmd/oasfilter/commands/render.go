package commands

import (
	"fmt"
	"io"
	"strings"
)

// RenderTable renders rows under headers.
// In quiet mode, headers are omitted and cells are tab-separated for piping.
// In normal mode, a fixed-width table with headers is rendered.
func RenderTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if quiet {
		for _, row := range rows {
			_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
				continue
			}
			_, _ = fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		_, _ = fmt.Fprintln(w, b.String())
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}
