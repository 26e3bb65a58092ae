// Package arrowbridge converts column sets to and from Apache Arrow records.
package arrowbridge

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/anytable/anytable/tabular"
)

func arrowType(k tabular.Kind) (arrow.DataType, error) {
	switch k {
	case tabular.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case tabular.KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case tabular.KindFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case tabular.KindString:
		return arrow.BinaryTypes.String, nil
	case tabular.KindTime:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	case tabular.KindBytes:
		return arrow.BinaryTypes.Binary, nil
	}
	return nil, fmt.Errorf("kind '%s' has no arrow representation", k)
}

// ArrowSchema maps each column kind to its Arrow equivalent. Timestamps
// are microsecond precision in UTC.
func ArrowSchema(schema tabular.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, schema.Len())
	for _, column := range schema.Columns() {
		t, err := arrowType(column.Kind)
		if err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{Name: column.Name, Type: t})
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToRecord materializes a column set as a single Arrow record. The caller
// owns the record and must Release it.
func ToRecord(set *tabular.ColumnSet) (arrow.Record, error) {
	schema, _ := set.Schema()

	arrowSchema, err := ArrowSchema(schema)
	if err != nil {
		return nil, err
	}

	builder := array.NewRecordBuilder(memory.NewGoAllocator(), arrowSchema)
	defer builder.Release()

	for i, column := range schema.Columns() {
		values, err := set.Column(i + 1)
		if err != nil {
			return nil, err
		}
		field := builder.Field(i)
		switch column.Kind {
		case tabular.KindBool:
			b := field.(*array.BooleanBuilder)
			for _, v := range values {
				b.Append(v.(bool))
			}
		case tabular.KindInt:
			b := field.(*array.Int64Builder)
			for _, v := range values {
				b.Append(v.(int64))
			}
		case tabular.KindFloat:
			b := field.(*array.Float64Builder)
			for _, v := range values {
				b.Append(v.(float64))
			}
		case tabular.KindString:
			b := field.(*array.StringBuilder)
			for _, v := range values {
				b.Append(v.(string))
			}
		case tabular.KindTime:
			b := field.(*array.TimestampBuilder)
			for _, v := range values {
				b.Append(arrow.Timestamp(v.(time.Time).UnixMicro()))
			}
		case tabular.KindBytes:
			b := field.(*array.BinaryBuilder)
			for _, v := range values {
				b.Append(v.([]byte))
			}
		}
	}

	return builder.NewRecord(), nil
}

// FromRecord copies an Arrow record into a new column set. Unsupported
// Arrow types are rejected.
func FromRecord(record arrow.Record) (*tabular.ColumnSet, error) {
	fields := record.Schema().Fields()

	columns := make([]tabular.Column, 0, len(fields))
	for _, field := range fields {
		kind, err := kindOf(field.Type)
		if err != nil {
			return nil, err
		}
		columns = append(columns, tabular.Column{Name: field.Name, Kind: kind})
	}
	schema, err := tabular.NewSchema(columns...)
	if err != nil {
		return nil, err
	}

	// Column kinds are non-null, reject null cells up front.
	for col, field := range fields {
		if record.Column(col).NullN() > 0 {
			return nil, fmt.Errorf("column '%s' contains null values", field.Name)
		}
	}

	set := tabular.NewColumnSet(schema)
	for row := 0; row < int(record.NumRows()); row++ {
		values := make([]any, len(fields))
		for col := range fields {
			v, err := cellValue(record.Column(col), row)
			if err != nil {
				return nil, err
			}
			values[col] = v
		}
		err := set.Append(values...)
		if err != nil {
			return nil, err
		}
	}

	return set, nil
}

func kindOf(t arrow.DataType) (tabular.Kind, error) {
	switch t.ID() {
	case arrow.BOOL:
		return tabular.KindBool, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return tabular.KindInt, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return tabular.KindFloat, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return tabular.KindString, nil
	case arrow.TIMESTAMP:
		return tabular.KindTime, nil
	case arrow.BINARY, arrow.LARGE_BINARY:
		return tabular.KindBytes, nil
	}
	return 0, fmt.Errorf("arrow type '%s' is not supported", t.Name())
}

func cellValue(col arrow.Array, row int) (any, error) {
	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(row), nil
	case *array.Int8:
		return int64(a.Value(row)), nil
	case *array.Int16:
		return int64(a.Value(row)), nil
	case *array.Int32:
		return int64(a.Value(row)), nil
	case *array.Int64:
		return a.Value(row), nil
	case *array.Float32:
		return float64(a.Value(row)), nil
	case *array.Float64:
		return a.Value(row), nil
	case *array.String:
		return a.Value(row), nil
	case *array.LargeString:
		return a.Value(row), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(row).ToTime(unit).UTC(), nil
	case *array.Binary:
		return a.Value(row), nil
	case *array.LargeBinary:
		return a.Value(row), nil
	}
	return nil, fmt.Errorf("arrow type '%s' is not supported", col.DataType().Name())
}
