package renderer

import (
	"strings"

	"github.com/etnz/classy"
	"github.com/etnz/classy/rowspan"
)

// Breakdown is a struct to represent one portfolio breakdown report as a
// positional grid, ready for table rendering. Merged cells are materialized:
// the first physical row of a span carries the text and the span count, the
// covered rows carry an empty cell with span zero.
type Breakdown struct {
	// Title of the report, derived from the view's pattern.
	Title string `json:"title"`
	// Subtitle describing the selection rule.
	Subtitle string `json:"subtitle"`
	// Headers is one label per column, in schema order.
	Headers []string `json:"headers"`
	// Rows is the positional grid, one entry per physical table row.
	Rows [][]Cell `json:"rows"`
	// Errors are the per-account warnings collected while building the report.
	Errors []string `json:"errors,omitempty"`
}

// Cell is one physical table cell. A zero Span means the cell is covered by
// a spanning cell above it and must not be emitted in rowspan-aware output.
type Cell struct {
	Text string `json:"text"`
	Span int    `json:"rowspan"`
}

// NewBreakdown creates a new Breakdown struct from an engine report. It lays
// the rowspan-annotated tree out as a rectangular grid over the breakdown
// schema columns.
func NewBreakdown(r classy.Report) *Breakdown {
	schema := classy.BreakdownSchema()
	return &Breakdown{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		Headers:  headers(schema),
		Rows:     grid(schema, r.Table),
		Errors:   r.Errors,
	}
}

// headers derives one display label per column from the schema names.
func headers(schema rowspan.Schema) []string {
	labels := make([]string, 0, len(schema))
	for _, col := range schema {
		labels = append(labels, strings.ReplaceAll(col.Name, "_", " "))
	}
	return labels
}

// grid lays the flattened row out positionally. The number of physical rows
// is the number of leaf rows beneath the top row.
func grid(schema rowspan.Schema, top rowspan.Row) [][]Cell {
	rows := leafRows(top)
	if rows == 0 {
		return nil
	}
	index := make(map[string]int, len(schema))
	for i, col := range schema {
		index[col.Name] = i
	}
	g := make([][]Cell, rows)
	for i := range g {
		g[i] = make([]Cell, len(schema))
	}
	place(g, index, top, 0)
	return g
}

// leafRows counts the physical rows a flattened row expands to.
func leafRows(r rowspan.Row) int {
	if len(r.Groups) == 0 {
		return 1
	}
	n := 0
	for _, t := range r.Groups {
		n += t.Span()
	}
	return n
}

// place writes a flattened row and its subtree into the grid starting at
// physical row top. Keys with an empty subtree span zero rows and are
// skipped entirely.
func place(g [][]Cell, index map[string]int, r rowspan.Row, top int) {
	for name, cell := range r.Cells {
		g[top][index[name]] = Cell{Text: Format(cell.Value), Span: cell.Span}
	}
	for name, table := range r.Groups {
		cursor := top
		for _, key := range table.Keys() {
			sr := table.Row(key)
			if sr.Span == 0 {
				continue
			}
			g[cursor][index[name]] = Cell{Text: key, Span: sr.Span}
			place(g, index, sr.Row, cursor)
			cursor += sr.Span
		}
	}
}
