package tabular

import (
	"encoding/json"
	"fmt"
)

// Column is a single (name, kind) pair of a schema.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema is an ordered, immutable description of a source's columns. Column
// order is the one authority for cell addressing: row synthesis and column
// materialization both walk columns in this order.
type Schema struct {
	columns []Column
	byName  map[string]int
}

// NewSchema builds a schema from the given columns. Names must be unique and
// non-empty, kinds must be valid.
func NewSchema(columns ...Column) (Schema, error) {
	byName := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return Schema{}, fmt.Errorf("column %d has no name", i+1)
		}
		if _, ok := kindNames[col.Kind]; !ok {
			return Schema{}, fmt.Errorf("column '%s' has invalid kind %d", col.Name, int(col.Kind))
		}
		if _, exists := byName[col.Name]; exists {
			return Schema{}, fmt.Errorf("%w: '%s'", ErrDuplicateColumn, col.Name)
		}
		byName[col.Name] = i
	}

	return Schema{
		columns: append([]Column{}, columns...),
		byName:  byName,
	}, nil
}

// MustSchema is NewSchema for schemas known at compile time.
func MustSchema(columns ...Column) Schema {
	s, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.columns)
}

// Column returns the column at the 1-based index col.
func (s Schema) Column(col int) (Column, error) {
	if col < 1 || col > len(s.columns) {
		return Column{}, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, len(s.columns))
	}
	return s.columns[col-1], nil
}

// Index returns the 1-based index of the named column, or 0 if absent.
func (s Schema) Index(name string) int {
	i, ok := s.byName[name]
	if !ok {
		return 0
	}
	return i + 1
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns a copy of the ordered column list.
func (s Schema) Columns() []Column {
	return append([]Column{}, s.columns...)
}

func (s Schema) Equal(other Schema) bool {
	if len(s.columns) != len(other.columns) {
		return false
	}
	for i, col := range s.columns {
		if other.columns[i] != col {
			return false
		}
	}
	return true
}

func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.columns)
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	columns := []Column{}
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}
	parsed, err := NewSchema(columns...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
