package app

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazygrid/internal/config"
	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/source"
)

const (
	minInferredWidth = 6
	maxInferredWidth = 40
	// widthSample bounds how many records are measured per column
	widthSample = 200
)

// BuildColumns turns the configured columns into grid columns. Without
// configured columns every dataset field becomes one, with its filter
// inferred from the values.
func BuildColumns(cols []config.ColumnConfig, ds *source.Dataset) []grid.ColumnDef[source.Record] {
	if len(cols) == 0 {
		for _, f := range ds.Fields {
			cols = append(cols, config.ColumnConfig{ID: f})
		}
	}

	defs := make([]grid.ColumnDef[source.Record], 0, len(cols))
	for _, c := range cols {
		id := c.ID
		def := grid.ColumnDef[source.Record]{
			ID:                  id,
			Header:              c.Header,
			Accessor:            func(r source.Record) any { return r[id] },
			Filter:              columnFilter(c, ds),
			DisableSorting:      !c.IsSortable(),
			DisableColumnFilter: !c.IsFilterable(),
			Size:                c.Width,
		}
		if def.Size <= 0 {
			def.Size = inferWidth(c, ds)
		}
		defs = append(defs, def)
	}
	return defs
}

func columnFilter(c config.ColumnConfig, ds *source.Dataset) filter.Fn {
	switch strings.ToLower(c.Filter) {
	case "number":
		return filter.Number()
	case "text":
		return filter.Text()
	case "enum":
		opts := c.Options
		if len(opts) == 0 {
			opts = filter.EnumOptions(fieldValues(ds, c.ID))
		}
		return filter.Enum(opts...)
	case "expr":
		return filter.Expr()
	case "none":
		return filter.Fn{}
	}

	if source.IsNumericField(ds.Records, c.ID) {
		return filter.Number()
	}
	return filter.Text()
}

func fieldValues(ds *source.Dataset, field string) []any {
	values := make([]any, len(ds.Records))
	for i, r := range ds.Records {
		values[i] = r[field]
	}
	return values
}

// inferWidth fits the header and the widest sampled value
func inferWidth(c config.ColumnConfig, ds *source.Dataset) int {
	header := c.Header
	if header == "" {
		header = c.ID
	}
	// Room for the sort and filter indicators
	w := runewidth.StringWidth(header) + 4

	for i, r := range ds.Records {
		if i >= widthSample {
			break
		}
		if cw := runewidth.StringWidth(filter.Stringify(r[c.ID])); cw > w {
			w = cw
		}
	}

	if w < minInferredWidth {
		w = minInferredWidth
	}
	if w > maxInferredWidth {
		w = maxInferredWidth
	}
	return w
}
