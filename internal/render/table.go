package render

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Column describes one table column: its header, an optional cell class and how to render a row's cell.
type Column[T any] struct {
	Header string
	Class  string
	Cell   func(T) templ.Component
}

// TableSpec parameterizes Table. RowClass is optional.
type TableSpec[T any] struct {
	Caption  string
	Class    string
	Columns  []Column[T]
	RowClass func(T) string
}

// Table renders rows in the given order using the column descriptors.
func Table[T any](spec TableSpec[T], rows []T) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.open("table", "class", spec.Class)
		if spec.Caption != "" {
			b.element("caption", spec.Caption)
		}
		b.open("thead")
		b.open("tr")
		for _, col := range spec.Columns {
			b.element("th", col.Header, "scope", "col", "class", col.Class)
		}
		b.close("tr")
		b.close("thead")

		b.open("tbody")
		for _, row := range rows {
			if spec.RowClass != nil {
				b.open("tr", "class", spec.RowClass(row))
			} else {
				b.open("tr")
			}
			for _, col := range spec.Columns {
				b.open("td", "class", col.Class)
				b.render(ctx, col.Cell(row))
				b.close("td")
			}
			b.close("tr")
		}
		b.close("tbody")
		b.close("table")
		return b.err
	})
}
