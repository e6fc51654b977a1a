// Package rowspan flattens an arbitrarily nested mapping, described by an
// ordered column schema, into a row-oriented structure where every cell is
// annotated with the number of physical table rows its label must span.
//
// This is the classic transform needed to render nested group data as an
// HTML-style table with merged group-label cells: a group's key spans all the
// rows of its subtree, and so do the scalar columns emitted before that group
// on the same level. The algorithm is schema driven and works for any nesting
// depth, not just a fixed number of levels.
package rowspan

import (
	"encoding/json"
	"fmt"
)

// Kind tags how a column's value is interpreted.
type Kind int

const (
	// Scalar marks a column holding a single renderable value.
	Scalar Kind = iota
	// Group marks a column holding a Mapping to be recursively expanded.
	Group
)

// Column is one entry of the ordered table schema.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered column list describing the shape of the value tree.
type Schema []Column

// Node holds the values of one nesting level, keyed by column name. Scalar
// columns hold arbitrary values; Group columns must hold a *Mapping.
type Node map[string]any

// Mapping is an insertion-ordered map from group key to child Node. The order
// of keys is the order rows are emitted in.
type Mapping struct {
	keys  []string
	nodes map[string]Node
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{nodes: make(map[string]Node)}
}

// Set adds or replaces the child node for a key, preserving first-insertion
// order.
func (m *Mapping) Set(key string, n Node) {
	if _, ok := m.nodes[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.nodes[key] = n
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string { return m.keys }

// Node returns the child node for a key, or nil.
func (m *Mapping) Node(key string) Node { return m.nodes[key] }

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// Cell pairs a value with the number of physical rows its label spans.
type Cell struct {
	Value any
	Span  int
}

// Row is the flattened form of a Node: every scalar column becomes a Cell,
// every group column becomes a *Table.
type Row struct {
	Cells  map[string]Cell
	Groups map[string]*Table
}

// SpannedRow is one keyed entry of a Table. Span equals the number of leaf
// rows beneath the key's subtree.
type SpannedRow struct {
	Key  string
	Row  Row
	Span int
}

// Table is the flattened form of a Mapping, in key insertion order.
type Table struct {
	keys []string
	rows map[string]*SpannedRow
}

// Keys returns the group keys in insertion order.
func (t *Table) Keys() []string { return t.keys }

// Row returns the spanned row for a key, or nil.
func (t *Table) Row(key string) *SpannedRow { return t.rows[key] }

// Span returns the total number of leaf rows beneath this table: the sum of
// its direct children's spans.
func (t *Table) Span() int {
	total := 0
	for _, k := range t.keys {
		total += t.rows[k].Span
	}
	return total
}

// Flatten expands root according to schema, left to right.
//
// Scalar columns before the first Group column are emitted with a provisional
// span of 1, then overwritten with the total span of the group once it has
// been recursively flattened: in a rendered table they occupy one merged cell
// covering all of the group's descendant rows. When no Group column remains,
// every row is a true leaf row and all spans are 1.
//
// A Group column whose value is not a *Mapping is a schema/data mismatch and
// fails the whole flattening.
func Flatten(schema Schema, root Node) (Row, error) {
	row := newRow()
	for i, col := range schema {
		if col.Kind == Scalar {
			row.Cells[col.Name] = Cell{Value: root[col.Name], Span: 1}
			continue
		}
		m, ok := root[col.Name].(*Mapping)
		if !ok {
			return Row{}, fmt.Errorf("column %q is tagged group but holds %T", col.Name, root[col.Name])
		}
		table, err := flattenMapping(schema[i+1:], m)
		if err != nil {
			return Row{}, err
		}
		row.Groups[col.Name] = table
		backpropagate(row, schema[:i], table.Span())
		// Columns after the group belong to deeper levels and were consumed
		// by the recursion.
		break
	}
	return row, nil
}

// flattenMapping expands every keyed child of a mapping with the remaining
// schema, and assigns each key the total span of its subtree.
func flattenMapping(schema Schema, m *Mapping) (*Table, error) {
	table := &Table{rows: make(map[string]*SpannedRow)}
	for _, key := range m.keys {
		table.keys = append(table.keys, key)
		table.rows[key] = &SpannedRow{Key: key, Row: newRow(), Span: 1}
	}

	for i, col := range schema {
		if col.Kind == Scalar {
			for _, key := range m.keys {
				table.rows[key].Row.Cells[col.Name] = Cell{Value: m.nodes[key][col.Name], Span: 1}
			}
			continue
		}
		for _, key := range m.keys {
			inner, ok := m.nodes[key][col.Name].(*Mapping)
			if !ok {
				return nil, fmt.Errorf("column %q is tagged group but holds %T under key %q", col.Name, m.nodes[key][col.Name], key)
			}
			sub, err := flattenMapping(schema[i+1:], inner)
			if err != nil {
				return nil, err
			}
			sr := table.rows[key]
			sr.Row.Groups[col.Name] = sub
			total := sub.Span()
			// The scalar columns already emitted for this key, and the key
			// itself, all cover the rows nested beneath the group.
			backpropagate(sr.Row, schema[:i], total)
			sr.Span = total
		}
		break
	}
	return table, nil
}

// backpropagate overwrites the span of every scalar column emitted before a
// group so that it covers the group's whole subtree.
func backpropagate(row Row, before Schema, span int) {
	for _, col := range before {
		if col.Kind != Scalar {
			continue
		}
		c := row.Cells[col.Name]
		c.Span = span
		row.Cells[col.Name] = c
	}
}

func newRow() Row {
	return Row{Cells: make(map[string]Cell), Groups: make(map[string]*Table)}
}

// --- JSON ---

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value any `json:"value"`
		Span  int `json:"rowspan"`
	}{c.Value, c.Span})
}

func (r Row) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Cells)+len(r.Groups))
	for name, c := range r.Cells {
		obj[name] = c
	}
	for name, t := range r.Groups {
		obj[name] = t
	}
	return json.Marshal(obj)
}

func (t *Table) MarshalJSON() ([]byte, error) {
	type entry struct {
		Key  string `json:"key"`
		Span int    `json:"rowspan"`
		Row  Row    `json:"row"`
	}
	entries := make([]entry, 0, len(t.keys))
	for _, k := range t.keys {
		sr := t.rows[k]
		entries = append(entries, entry{Key: k, Span: sr.Span, Row: sr.Row})
	}
	return json.Marshal(entries)
}
