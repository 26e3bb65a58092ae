package table

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/anytable/anytable/tabular"
)

// The table declares both capabilities of the tabular contract: cells and
// whole columns. Consumers asking for columns take the direct path.
var (
	_ tabular.SchemaSource = (*Table)(nil)
	_ tabular.CellReader   = (*Table)(nil)
	_ tabular.Completer    = (*Table)(nil)
	_ tabular.ColumnReader = (*Table)(nil)
)

// escapePath protects a column name from being interpreted as a gjson path
// expression.
func escapePath(name string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return replacer.Replace(name)
}

func lookupColumn(payload []byte, name string) (interface{}, bool) {
	result := gjson.GetBytes(payload, escapePath(name))
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

func (t *Table) Schema() (tabular.Schema, error) {
	return t.schema, nil
}

// Done reports whether the 1-based row index is past the last row.
func (t *Table) Done(row int) bool {
	return row > len(t.Rows)
}

// Cell returns the normalized value at the 1-based row and column index.
func (t *Table) Cell(row, col int) (interface{}, error) {
	if row < 1 || row > len(t.Rows) {
		return nil, fmt.Errorf("%w: %d of %d", tabular.ErrInvalidRow, row, len(t.Rows))
	}
	column, err := t.schema.Column(col)
	if err != nil {
		return nil, err
	}

	value, exists := lookupColumn(t.Rows[row-1].Payload, column.Name)
	if !exists {
		return nil, fmt.Errorf("row %d has no column '%s'", row, column.Name)
	}

	return column.Kind.Normalize(value)
}

// Column returns the full column at the 1-based index, in storage order.
func (t *Table) Column(col int) ([]interface{}, error) {
	column, err := t.schema.Column(col)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		value, exists := lookupColumn(row.Payload, column.Name)
		if !exists {
			return nil, fmt.Errorf("row %d has no column '%s'", i+1, column.Name)
		}
		values[i], err = column.Kind.Normalize(value)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return values, nil
}

// SetCell overwrites a single column of a row. The value must conform to the
// column's declared kind. Persisted as a merge patch.
func (t *Table) SetCell(row *Row, name string, value interface{}) error {
	col := t.schema.Index(name)
	if col == 0 {
		return fmt.Errorf("%w: column '%s' not found", tabular.ErrInvalidColumn, name)
	}
	column, _ := t.schema.Column(col)

	normalized, err := column.Kind.Normalize(value)
	if err != nil {
		return err
	}
	if raw, ok := normalized.([]byte); ok {
		// bytes columns are stored as plain strings, not base64
		normalized = string(raw)
	}

	merge, err := sjson.SetBytes([]byte(`{}`), escapePath(name), normalized)
	if err != nil {
		return fmt.Errorf("set cell: %w", err)
	}

	return t.patchByRow(row, merge, true)
}
