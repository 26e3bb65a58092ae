package tabular

import "errors"

// Contract violations by a source. All of them propagate to the caller of
// Rows, Columns or iteration; nothing is retried or recovered here.
var (
	// ErrMissingSchema is returned when a source declares a cell or column
	// capability but does not provide a schema.
	ErrMissingSchema = errors.New("source does not provide a schema")

	// ErrMissingAccessor is returned when a source declares a capability but
	// lacks one of its required accessors.
	ErrMissingAccessor = errors.New("source is missing a required accessor")

	// ErrTypeMismatch is returned when an accessor produces a value that does
	// not conform to the column's declared kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrDuplicateColumn is returned when a schema declares the same column
	// name twice.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrUnsupportedSource is returned when a value declares no capability and
	// does not already have the requested shape.
	ErrUnsupportedSource = errors.New("source does not satisfy any tabular contract")
)
