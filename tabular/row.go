package tabular

import (
	"encoding/json"
	"fmt"
)

// Row is one record of a source: one normalized value per schema column, in
// schema order. A row is created per iteration step and handed over to the
// consumer; the iterator keeps no reference to it.
type Row struct {
	schema Schema
	values []any
}

// NewRow builds a row for the given schema, normalizing every value against
// its column kind.
func NewRow(schema Schema, values ...any) (Row, error) {
	if len(values) != schema.Len() {
		return Row{}, fmt.Errorf("expected %d values, got %d", schema.Len(), len(values))
	}
	normalized := make([]any, len(values))
	for i, v := range values {
		col := schema.columns[i]
		nv, err := col.Kind.Normalize(v)
		if err != nil {
			return Row{}, fmt.Errorf("column '%s': %w", col.Name, err)
		}
		normalized[i] = nv
	}
	return Row{schema: schema, values: normalized}, nil
}

// Schema returns the schema the row was built against.
func (r Row) Schema() Schema {
	return r.schema
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r.values)
}

// Value returns the field at the 1-based column index.
func (r Row) Value(col int) (any, error) {
	if col < 1 || col > len(r.values) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, len(r.values))
	}
	return r.values[col-1], nil
}

// Get returns the field for the named column.
func (r Row) Get(name string) (any, bool) {
	i := r.schema.Index(name)
	if i == 0 {
		return nil, false
	}
	return r.values[i-1], true
}

// Map returns the row as a name-to-value map.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, col := range r.schema.columns {
		m[col.Name] = r.values[i]
	}
	return m
}

// Values returns a copy of the fields in schema order.
func (r Row) Values() []any {
	return append([]any{}, r.values...)
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
