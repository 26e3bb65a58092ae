package tabular

import "fmt"

func errWrap(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// cellIterator synthesizes rows from a cell-capable source. State is either
// ready at some 1-based row index or exhausted; exhaustion is terminal.
type cellIterator struct {
	schema    Schema
	cells     CellReader
	done      Completer
	row       int
	current   Row
	err       error
	exhausted bool
}

func newCellIterator(schema Schema, cells CellReader, done Completer) *cellIterator {
	return &cellIterator{
		schema: schema,
		cells:  cells,
		done:   done,
		row:    1,
	}
}

func (it *cellIterator) Next() bool {
	if it.exhausted || it.err != nil {
		return false
	}
	if it.done.Done(it.row) {
		it.exhausted = true
		return false
	}

	// Fetch in ascending schema order. Any failure aborts the whole row.
	values := make([]any, it.schema.Len())
	for i, col := range it.schema.columns {
		v, err := it.cells.Cell(it.row, i+1)
		if err != nil {
			it.err = fmt.Errorf("cell (%d,%d): %w", it.row, i+1, err)
			it.exhausted = true
			return false
		}
		nv, err := col.Kind.Normalize(v)
		if err != nil {
			it.err = fmt.Errorf("cell (%d,%d) column '%s': %w", it.row, i+1, col.Name, err)
			it.exhausted = true
			return false
		}
		values[i] = nv
	}

	it.current = Row{schema: it.schema, values: values}
	it.row++
	return true
}

func (it *cellIterator) Row() Row {
	return it.current
}

func (it *cellIterator) Err() error {
	return it.err
}
