package table

import (
	"testing"

	. "github.com/fulldump/biff"

	"github.com/anytable/anytable/tabular"
)

func TestTableProducesRows(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		tab.Insert(&User{"1", "Pablo", 30})
		tab.Insert(&User{"2", "Sara", 31})

		AssertEqual(tabular.ProducesCells(tab), true)
		AssertEqual(tabular.ProducesColumns(tab), true)

		// Run
		it, err := tabular.Rows(tab)
		AssertNil(err)

		// Check
		rows := []map[string]any{}
		for it.Next() {
			rows = append(rows, it.Row().Map())
		}
		AssertNil(it.Err())
		AssertEqualJson(rows, []map[string]any{
			{"id": "1", "name": "Pablo", "age": 30},
			{"id": "2", "name": "Sara", "age": 31},
		})
	})
}

func TestTableProducesColumns(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		tab.Insert(&User{"1", "Pablo", 30})
		tab.Insert(&User{"2", "Sara", 31})
		tab.Insert(&User{"3", "Nadia", 32})

		set, err := tabular.Columns(tab)
		AssertNil(err)
		AssertEqual(set.Len(), 3)

		names, err := set.Strings("name")
		AssertNil(err)
		AssertEqual(names, []string{"Pablo", "Sara", "Nadia"})

		ages, err := set.Ints("age")
		AssertNil(err)
		AssertEqual(ages, []int64{30, 31, 32})
	})
}

func TestEmptyTableProducesEmptyColumns(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		defer tab.Close()

		it, err := tabular.Rows(tab)
		AssertNil(err)
		AssertEqual(it.Next(), false)

		set, err := tabular.Columns(tab)
		AssertNil(err)
		AssertEqual(set.Len(), 0)
	})
}

func TestTableCellBounds(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		tab.Insert(&User{"1", "Pablo", 30})

		cell, err := tab.Cell(1, 3)
		AssertNil(err)
		AssertEqual(cell, int64(30))

		_, err = tab.Cell(2, 1)
		AssertNotNil(err)

		_, err = tab.Cell(1, 4)
		AssertNotNil(err)

		AssertEqual(tab.Done(1), false)
		AssertEqual(tab.Done(2), true)
	})
}
