package cmd

import (
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
)

// render writes v as indented JSON or as a table of headers and rows.
func (a *app) render(w io.Writer, v any, headers []string, rows [][]string) error {
	if a.jsonOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table := tablewriter.NewTable(w)
	hs := make([]any, len(headers))
	for i, h := range headers {
		hs[i] = h
	}
	table.Header(hs...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}
