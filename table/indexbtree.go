package table

import (
	"fmt"
	"time"

	"github.com/google/btree"

	"github.com/anytable/anytable/tabular"
)

// OrderedIndex keeps rows sorted by one column using a btree. Supported for
// int, float, string and time columns.
type OrderedIndex struct {
	Btree   *btree.BTreeG[*orderedRow]
	Options *IndexOptions
	kind    tabular.Kind
	column  string
}

type orderedRow struct {
	*Row
	Value interface{}
}

func (t *Table) newOrderedIndex(options *IndexOptions) (*OrderedIndex, error) {

	col := t.schema.Index(options.Column)
	column, err := t.schema.Column(col)
	if err != nil {
		return nil, err
	}

	switch column.Kind {
	case tabular.KindInt, tabular.KindFloat, tabular.KindString, tabular.KindTime:
	default:
		return nil, fmt.Errorf("ordered index does not support %s columns", column.Kind)
	}

	index := &OrderedIndex{
		Options: options,
		kind:    column.Kind,
		column:  column.Name,
	}
	index.Btree = btree.NewG(32, func(a, b *orderedRow) bool {
		if index.less(a.Value, b.Value) {
			return true
		}
		if index.less(b.Value, a.Value) {
			return false
		}
		// break ties by row identity so equal values can coexist
		return fmt.Sprintf("%p", a.Row) < fmt.Sprintf("%p", b.Row)
	})

	return index, nil
}

func (i *OrderedIndex) less(a, b interface{}) bool {
	switch i.kind {
	case tabular.KindInt:
		return a.(int64) < b.(int64)
	case tabular.KindFloat:
		return a.(float64) < b.(float64)
	case tabular.KindString:
		return a.(string) < b.(string)
	case tabular.KindTime:
		return a.(time.Time).Before(b.(time.Time))
	}
	return false
}

func (i *OrderedIndex) value(row *Row) (interface{}, error) {
	raw, exists := lookupColumn(row.Payload, i.column)
	if !exists {
		if i.Options.Sparse {
			return nil, nil
		}
		return nil, fmt.Errorf("column '%s' is indexed and mandatory", i.column)
	}
	return i.kind.Normalize(raw)
}

func (i *OrderedIndex) AddRow(row *Row) error {
	value, err := i.value(row)
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}

	i.Btree.ReplaceOrInsert(&orderedRow{Row: row, Value: value})
	return nil
}

func (i *OrderedIndex) RemoveRow(row *Row) error {
	value, err := i.value(row)
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}

	i.Btree.Delete(&orderedRow{Row: row, Value: value})
	return nil
}

// Traverse visits rows in column order, descending when reverse is set. The
// callback returns false to stop.
func (i *OrderedIndex) Traverse(reverse bool, f func(row *Row) bool) {
	iterator := func(item *orderedRow) bool {
		return f(item.Row)
	}
	if reverse {
		i.Btree.Descend(iterator)
	} else {
		i.Btree.Ascend(iterator)
	}
}
