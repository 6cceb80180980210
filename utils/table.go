package utils

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/raushankrgupta/shoe-price-tracker/models"
)

// RenderRecords writes records as a table, in batch order.
func RenderRecords(w io.Writer, records []models.ShoeRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Brand", "Model", "Price", "Source", "Captured"})

	for i, r := range records {
		t.AppendRow(table.Row{i, r.Brand, r.Model, r.Price, r.Source, r.CapturedAt.Format(time.DateTime)})
	}

	t.AppendFooter(table.Row{"", "", "", "", "Rows", len(records)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
