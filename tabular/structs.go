package tabular

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// StructSource adapts a slice of structs into a cell-capable source. The
// schema is derived from the exported fields, honoring `json` tags for column
// names. It only declares the cell capability, so both Rows and Columns go
// through the synthesized iterator.
type StructSource struct {
	schema Schema
	value  reflect.Value
	fields []int
}

var timeType = reflect.TypeOf(time.Time{})

// FromStructs builds a StructSource from a slice (or array) of structs or
// struct pointers. Fields with unsupported types or a `json:"-"` tag are
// skipped.
func FromStructs(slice any) (*StructSource, error) {
	v := reflect.ValueOf(slice)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a slice, got %T", slice)
	}

	elem := v.Type().Elem()
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a slice of structs, got %T", slice)
	}

	columns := []Column{}
	fields := []int{}
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tag = strings.Split(tag, ",")[0]
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		kind, ok := fieldKind(field.Type)
		if !ok {
			continue
		}
		columns = append(columns, Column{Name: name, Kind: kind})
		fields = append(fields, i)
	}

	schema, err := NewSchema(columns...)
	if err != nil {
		return nil, err
	}

	return &StructSource{schema: schema, value: v, fields: fields}, nil
}

func fieldKind(t reflect.Type) (Kind, bool) {
	if t == timeType {
		return KindTime, true
	}
	switch t.Kind() {
	case reflect.Bool:
		return KindBool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return KindInt, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.String:
		return KindString, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindBytes, true
		}
	}
	return KindInvalid, false
}

func (s *StructSource) Schema() (Schema, error) {
	return s.schema, nil
}

func (s *StructSource) Done(row int) bool {
	return row > s.value.Len()
}

func (s *StructSource) Cell(row, col int) (any, error) {
	if row < 1 || row > s.value.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidRow, row, s.value.Len())
	}
	if col < 1 || col > len(s.fields) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, len(s.fields))
	}
	elem := s.value.Index(row - 1)
	if elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, fmt.Errorf("%w: row %d is nil", ErrInvalidRow, row)
		}
		elem = elem.Elem()
	}
	return elem.Field(s.fields[col-1]).Interface(), nil
}
