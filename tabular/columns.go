package tabular

import (
	"encoding/json"
	"fmt"
	"time"
)

// ColumnSet is an eager, ordered name-to-sequence collection: one value slice
// per schema column, all of equal length. It implements the schema, cell and
// column accessors itself, so a ColumnSet is a valid source for both Rows and
// Columns (the identity pass-through for the latter).
type ColumnSet struct {
	schema Schema
	values [][]any
}

// NewColumnSet returns an empty collection for the schema.
func NewColumnSet(schema Schema) *ColumnSet {
	values := make([][]any, schema.Len())
	for i := range values {
		values[i] = []any{}
	}
	return &ColumnSet{schema: schema, values: values}
}

func (s *ColumnSet) Schema() (Schema, error) {
	return s.schema, nil
}

// Len returns the number of rows.
func (s *ColumnSet) Len() int {
	if len(s.values) == 0 {
		return 0
	}
	return len(s.values[0])
}

// Append adds one row, normalizing each field against its column kind.
func (s *ColumnSet) Append(values ...any) error {
	if len(values) != s.schema.Len() {
		return fmt.Errorf("expected %d values, got %d", s.schema.Len(), len(values))
	}
	normalized := make([]any, len(values))
	for i, v := range values {
		col := s.schema.columns[i]
		nv, err := col.Kind.Normalize(v)
		if err != nil {
			return fmt.Errorf("column '%s': %w", col.Name, err)
		}
		normalized[i] = nv
	}
	for i, v := range normalized {
		s.values[i] = append(s.values[i], v)
	}
	return nil
}

// AppendRow adds one row produced by a row iterator.
func (s *ColumnSet) AppendRow(row Row) error {
	return s.Append(row.values...)
}

// Column returns a copy of the values at the 1-based column index. Mutating
// the result does not touch the set.
func (s *ColumnSet) Column(col int) ([]any, error) {
	if col < 1 || col > len(s.values) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, len(s.values))
	}
	out := make([]any, len(s.values[col-1]))
	copy(out, s.values[col-1])
	return out, nil
}

// Cell returns the value at the 1-based row and column index.
func (s *ColumnSet) Cell(row, col int) (any, error) {
	if col < 1 || col > len(s.values) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, len(s.values))
	}
	if row < 1 || row > s.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidRow, row, s.Len())
	}
	return s.values[col-1][row-1], nil
}

// Done reports whether row is past the last row.
func (s *ColumnSet) Done(row int) bool {
	return row > s.Len()
}

// Values returns a copy of the sequence for the named column.
func (s *ColumnSet) Values(name string) ([]any, bool) {
	i := s.schema.Index(name)
	if i == 0 {
		return nil, false
	}
	out := make([]any, len(s.values[i-1]))
	copy(out, s.values[i-1])
	return out, true
}

// Ints returns the named column as int64 values.
func (s *ColumnSet) Ints(name string) ([]int64, error) {
	return typedColumn[int64](s, name, KindInt)
}

// Floats returns the named column as float64 values.
func (s *ColumnSet) Floats(name string) ([]float64, error) {
	return typedColumn[float64](s, name, KindFloat)
}

// Strings returns the named column as string values.
func (s *ColumnSet) Strings(name string) ([]string, error) {
	return typedColumn[string](s, name, KindString)
}

// Bools returns the named column as bool values.
func (s *ColumnSet) Bools(name string) ([]bool, error) {
	return typedColumn[bool](s, name, KindBool)
}

// Times returns the named column as time.Time values.
func (s *ColumnSet) Times(name string) ([]time.Time, error) {
	return typedColumn[time.Time](s, name, KindTime)
}

func typedColumn[T any](s *ColumnSet, name string, kind Kind) ([]T, error) {
	i := s.schema.Index(name)
	if i == 0 {
		return nil, fmt.Errorf("column '%s' not found", name)
	}
	col := s.schema.columns[i-1]
	if col.Kind != kind {
		return nil, fmt.Errorf("%w: column '%s' is %s, not %s", ErrTypeMismatch, name, col.Kind, kind)
	}
	out := make([]T, len(s.values[i-1]))
	for j, v := range s.values[i-1] {
		out[j] = v.(T)
	}
	return out, nil
}

func (s *ColumnSet) MarshalJSON() ([]byte, error) {
	m := make(map[string][]any, len(s.values))
	for i, col := range s.schema.columns {
		m[col.Name] = s.values[i]
	}
	return json.Marshal(m)
}

// materializeDirect pulls every schema column with one Column call each and
// validates values and lengths.
func materializeDirect(schema Schema, source ColumnReader) (*ColumnSet, error) {
	set := NewColumnSet(schema)
	length := -1
	for i, col := range schema.columns {
		values, err := source.Column(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", col.Name, err)
		}
		if length == -1 {
			length = len(values)
		} else if len(values) != length {
			return nil, fmt.Errorf("column '%s' has %d values, expected %d", col.Name, len(values), length)
		}
		normalized := make([]any, len(values))
		for j, v := range values {
			nv, err := col.Kind.Normalize(v)
			if err != nil {
				return nil, fmt.Errorf("column '%s' row %d: %w", col.Name, j+1, err)
			}
			normalized[j] = nv
		}
		set.values[i] = normalized
	}
	return set, nil
}

// materializeRows drains a row iterator into per-column sequences. A failed
// iteration discards the partial result.
func materializeRows(schema Schema, it RowIterator) (*ColumnSet, error) {
	set := NewColumnSet(schema)
	for it.Next() {
		if err := set.AppendRow(it.Row()); err != nil {
			return nil, err
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
