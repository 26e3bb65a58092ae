package tabular

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/fulldump/biff"
)

// dualSource declares both capabilities. Its column accessor disagrees with
// its cell accessor on purpose, to prove which path was taken.
type dualSource struct {
	memSource
	columns     [][]any
	columnCalls int
}

func (s *dualSource) Column(col int) ([]any, error) {
	s.columnCalls++
	if col < 1 || col > len(s.columns) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return s.columns[col-1], nil
}

func TestColumnsFromCells(t *testing.T) {
	// Setup
	source := newMemSource([][]any{
		{1, "x"},
		{2, "y"},
		{3, "z"},
	})

	// Run
	set, err := Columns(source)

	// Check
	AssertNil(err)
	AssertEqual(set.Len(), 3)

	a, err := set.Ints("a")
	AssertNil(err)
	AssertEqual(a, []int64{1, 2, 3})

	b, err := set.Strings("b")
	AssertNil(err)
	AssertEqual(b, []string{"x", "y", "z"})
}

func TestColumnsDirectPath(t *testing.T) {
	// Setup
	source := &dualSource{
		memSource: *newMemSource([][]any{{1, "cell"}}),
		columns: [][]any{
			{10, 20},
			{"column", "column"},
		},
	}

	// Run
	set, err := Columns(source)

	// Check: direct path exclusively, one call per column, zero cell reads
	AssertNil(err)
	AssertEqual(source.columnCalls, 2)
	AssertEqual(source.cellCalls, 0)

	a, _ := set.Ints("a")
	AssertEqual(a, []int64{10, 20})
	b, _ := set.Strings("b")
	AssertEqual(b, []string{"column", "column"})
}

func TestColumnsRoundTrip(t *testing.T) {
	// rows -> columns -> rows reconstructs the same values in the same order
	source := newMemSource([][]any{
		{1, "x"},
		{2, "y"},
		{3, "z"},
	})

	set, err := Columns(source)
	AssertNil(err)

	it, err := Rows(set)
	AssertNil(err)

	direct, _ := Rows(newMemSource(source.rows))
	for direct.Next() {
		AssertEqual(it.Next(), true)
		AssertEqualJson(it.Row().Map(), direct.Row().Map())
	}
	AssertEqual(it.Next(), false)
}

func TestColumnsEmptySource(t *testing.T) {
	set, err := Columns(newMemSource(nil))

	AssertNil(err)
	AssertEqual(set.Len(), 0)

	a, err := set.Ints("a")
	AssertNil(err)
	AssertEqual(len(a), 0)
}

func TestColumnsIdentityPassThrough(t *testing.T) {
	set := NewColumnSet(MustSchema(Column{Name: "a", Kind: KindInt}))
	set.Append(1)

	again, err := Columns(set)
	AssertNil(err)
	AssertEqual(again, set)
}

func TestColumnsUnsupportedSource(t *testing.T) {
	_, err := Columns("nope")
	AssertEqual(errors.Is(err, ErrUnsupportedSource), true)
}

func TestColumnsUnequalLengths(t *testing.T) {
	source := &dualSource{
		memSource: *newMemSource(nil),
		columns: [][]any{
			{1, 2, 3},
			{"x"},
		},
	}

	_, err := Columns(source)
	AssertNotNil(err)
}

func TestColumnsTypeMismatch(t *testing.T) {
	source := &dualSource{
		memSource: *newMemSource(nil),
		columns: [][]any{
			{1},
			{true}, // not a string
		},
	}

	_, err := Columns(source)
	AssertEqual(errors.Is(err, ErrTypeMismatch), true)
}

func TestColumnsRowDrivenFailureDiscardsResult(t *testing.T) {
	source := newMemSource([][]any{
		{1, "x"},
		{"boom", "y"}, // not an int
	})

	set, err := Columns(source)
	AssertEqual(errors.Is(err, ErrTypeMismatch), true)
	AssertEqual(set == nil, true)
}

func TestColumnSetAccessors(t *testing.T) {
	set := NewColumnSet(MustSchema(
		Column{Name: "n", Kind: KindInt},
		Column{Name: "ok", Kind: KindBool},
	))
	AssertNil(set.Append(7, true))
	AssertNil(set.Append(8, false))

	cell, err := set.Cell(2, 1)
	AssertNil(err)
	AssertEqual(cell, int64(8))

	_, err = set.Cell(3, 1)
	AssertEqual(errors.Is(err, ErrInvalidRow), true)

	_, err = set.Cell(1, 5)
	AssertEqual(errors.Is(err, ErrInvalidColumn), true)

	ok, err := set.Bools("ok")
	AssertNil(err)
	AssertEqual(ok, []bool{true, false})

	_, err = set.Ints("ok")
	AssertEqual(errors.Is(err, ErrTypeMismatch), true)

	values, found := set.Values("n")
	AssertEqual(found, true)
	AssertEqual(len(values), 2)
}

func TestColumnSetColumnIsDetached(t *testing.T) {
	set := NewColumnSet(MustSchema(
		Column{Name: "n", Kind: KindInt},
	))
	AssertNil(set.Append(7))

	column, err := set.Column(1)
	AssertNil(err)
	column[0] = int64(999)

	values, _ := set.Values("n")
	values[0] = int64(888)

	cell, err := set.Cell(1, 1)
	AssertNil(err)
	AssertEqual(cell, int64(7))
}
