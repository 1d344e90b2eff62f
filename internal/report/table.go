// Package report renders run reports for terminal output.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"GovtJobsScanner/internal/domain"
)

const maxTitleWidth = 70

// RenderListings writes the preview rows as a table followed by the status line.
func RenderListings(w io.Writer, r domain.RunReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Category", "Source", "Title", "Link"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: maxTitleWidth},
	})

	for i, l := range r.Listings {
		t.AppendRow(table.Row{i + 1, l.Category, l.Source, l.Title, l.Link})
	}
	t.Render()

	fmt.Fprintln(w, r.Message())
}

// RenderSummary writes per-source counts followed by the status line.
func RenderSummary(w io.Writer, r domain.RunReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Found", "Error"})

	for _, src := range r.Sources {
		t.AppendRow(table.Row{src.Source, src.Found, src.Error})
	}
	t.AppendFooter(table.Row{"total", r.Found, ""})
	t.Render()

	fmt.Fprintln(w, r.Message())
}
