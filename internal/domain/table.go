package domain

import (
	"strconv"
	"strings"
)

// ValueKind tells which of the scalar forms a Value holds.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
)

// Value is a single spreadsheet cell: text, a number, or empty.
// The zero Value is Empty.
type Value struct {
	kind   ValueKind
	text   string
	number float64
}

// Empty is the canonical blank cell. It renders as "".
var Empty = Value{}

// Text returns a text cell. A blank string yields Empty.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Empty
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, number: f}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Float returns the numeric payload and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// String renders the cell the way it is written to a text file.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		return ""
	}
}

// Row maps column names to cells. A column missing from the map reads as Empty.
type Row map[string]Value

// Get returns the cell for column, or Empty.
func (r Row) Get(column string) Value {
	if r == nil {
		return Empty
	}
	return r[column]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, v := range r {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

// Table is an ordered header plus the rows under it.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from a header and rows given in header order.
// Short rows are padded with Empty.
func NewTable(columns []string, records ...[]Value) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	for _, rec := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = Empty
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HasColumn reports whether name is part of the header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// Record returns the row's cells in header order.
func (t *Table) Record(i int) []Value {
	rec := make([]Value, len(t.Columns))
	for j, col := range t.Columns {
		rec[j] = t.Rows[i].Get(col)
	}
	return rec
}
