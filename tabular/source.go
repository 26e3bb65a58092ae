// Package tabular is the interoperability contract between tabular data
// producers and consumers. A producer opts into the contract by implementing
// the minimal accessor it can serve cheaply (cell-at-a-time or whole columns)
// and the package upgrades it into a full row iterator or a materialized
// column collection, with every cell validated against the declared schema.
// Consumers call Rows or Columns and never learn which primitive the producer
// chose.
package tabular

// SchemaSource describes its own columns. Every source that declares a cell
// or column capability must also implement this; Rows and Columns fail with
// ErrMissingSchema otherwise.
type SchemaSource interface {
	Schema() (Schema, error)
}

// CellReader is the cell capability: random access to a single value by
// 1-based row and column index. The returned value must be normalizable to
// the schema kind of that column.
type CellReader interface {
	Cell(row, col int) (any, error)
}

// Completer is the completion predicate required alongside CellReader: Done
// reports true once row is past the last row.
type Completer interface {
	Done(row int) bool
}

// ColumnReader is the column capability: direct access to a whole column by
// 1-based index.
type ColumnReader interface {
	Column(col int) ([]any, error)
}

// RowIterator is a lazy, forward-only, non-restartable sequence of rows. It
// is also the pass-through shape: a value that already implements it is
// returned unchanged by Rows. A single iterator must not be pulled from two
// goroutines at once.
type RowIterator interface {
	// Next advances to the next row, returning false on exhaustion or error.
	Next() bool

	// Row returns the current row. Only valid after Next returned true.
	Row() Row

	// Err returns the error that stopped iteration, if any.
	Err() error
}

// ProducesCells reports whether source declares the cell capability. The
// answer depends only on the source's type.
func ProducesCells(source any) bool {
	_, ok := source.(CellReader)
	return ok
}

// ProducesColumns reports whether source declares the column capability.
func ProducesColumns(source any) bool {
	_, ok := source.(ColumnReader)
	return ok
}

// sourceSchema resolves the schema of a source that declared a capability.
func sourceSchema(source any) (Schema, error) {
	ss, ok := source.(SchemaSource)
	if !ok {
		return Schema{}, ErrMissingSchema
	}
	return ss.Schema()
}

// Rows returns a lazy row iterator over source.
//
// Dispatch: a source with the cell capability gets a synthesized iterator
// that walks Cell across all schema columns until Done reports true. A value
// that is already a RowIterator is returned unchanged. A *ColumnSet iterates
// over its own cells. Anything else is ErrUnsupportedSource.
func Rows(source any) (RowIterator, error) {
	if cells, ok := source.(CellReader); ok {
		schema, err := sourceSchema(source)
		if err != nil {
			return nil, err
		}
		done, ok := source.(Completer)
		if !ok {
			return nil, errWrap(ErrMissingAccessor, "cell capability requires Done")
		}
		return newCellIterator(schema, cells, done), nil
	}

	if it, ok := source.(RowIterator); ok {
		return it, nil
	}

	return nil, errWrap(ErrUnsupportedSource, "cannot produce rows")
}

// Columns materializes source into a column collection.
//
// Dispatch order honors the direct path first: a source with the column
// capability is read with exactly one Column call per schema column, even if
// it also declares the cell capability. A cell-only source is drained through
// the row iterator. A *ColumnSet is returned as-is. Anything else is
// ErrUnsupportedSource.
func Columns(source any) (*ColumnSet, error) {
	if set, ok := source.(*ColumnSet); ok {
		return set, nil
	}

	if direct, ok := source.(ColumnReader); ok {
		schema, err := sourceSchema(source)
		if err != nil {
			return nil, err
		}
		return materializeDirect(schema, direct)
	}

	if ProducesCells(source) {
		it, err := Rows(source)
		if err != nil {
			return nil, err
		}
		schema, err := sourceSchema(source)
		if err != nil {
			return nil, err
		}
		return materializeRows(schema, it)
	}

	return nil, errWrap(ErrUnsupportedSource, "cannot produce columns")
}
