package table

import (
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
)

// Index is implemented by the secondary index kinds: unique map and ordered
// btree.
type Index interface {
	AddRow(row *Row) error
	RemoveRow(row *Row) error
}

type IndexOptions struct {
	Column string `json:"column"`
	Type   string `json:"type"` // "unique" | "ordered"
	Sparse bool   `json:"sparse"`
}

const (
	IndexTypeUnique  = "unique"
	IndexTypeOrdered = "ordered"
)

// UniqueIndex maps a column's string representation to its row. One row per
// value.
type UniqueIndex struct {
	Entries map[string]*Row
	RWmutex *sync.RWMutex
	Options *IndexOptions
}

func NewUniqueIndex(options *IndexOptions) *UniqueIndex {
	return &UniqueIndex{
		Entries: map[string]*Row{},
		RWmutex: &sync.RWMutex{},
		Options: options,
	}
}

func (i *UniqueIndex) key(row *Row) (string, bool) {
	result := gjson.GetBytes(row.Payload, escapePath(i.Options.Column))
	if !result.Exists() || result.Type == gjson.Null {
		return "", false
	}
	return result.String(), true
}

func (i *UniqueIndex) AddRow(row *Row) error {

	value, exists := i.key(row)
	if !exists {
		if i.Options.Sparse {
			return nil
		}
		return fmt.Errorf("column '%s' is indexed and mandatory", i.Options.Column)
	}

	i.RWmutex.RLock()
	_, conflict := i.Entries[value]
	i.RWmutex.RUnlock()
	if conflict {
		return fmt.Errorf("index conflict: column '%s' with value '%s'", i.Options.Column, value)
	}

	i.RWmutex.Lock()
	i.Entries[value] = row
	i.RWmutex.Unlock()

	return nil
}

func (i *UniqueIndex) RemoveRow(row *Row) error {

	value, exists := i.key(row)
	if !exists {
		return nil
	}

	i.RWmutex.Lock()
	delete(i.Entries, value)
	i.RWmutex.Unlock()

	return nil
}

// FindUnique returns the row indexed under value.
func (i *UniqueIndex) FindUnique(value string) (*Row, bool) {
	i.RWmutex.RLock()
	row, ok := i.Entries[value]
	i.RWmutex.RUnlock()
	return row, ok
}

// CreateIndex builds a secondary index over a schema column and journals it.
func (t *Table) CreateIndex(options *IndexOptions) error {

	err := t.indexRows(options)
	if err != nil {
		return err
	}

	payload, err := marshalOptions(options)
	if err != nil {
		return err
	}

	return t.persist(commandIndex, payload)
}

func (t *Table) indexRows(options *IndexOptions) error {

	if t.schema.Index(options.Column) == 0 {
		return fmt.Errorf("column '%s' is not part of the schema", options.Column)
	}
	if _, exists := t.Indexes[options.Column]; exists {
		return fmt.Errorf("index '%s' already exists", options.Column)
	}

	var index Index
	switch options.Type {
	case IndexTypeUnique, "":
		options.Type = IndexTypeUnique
		index = NewUniqueIndex(options)
	case IndexTypeOrdered:
		ordered, err := t.newOrderedIndex(options)
		if err != nil {
			return err
		}
		index = ordered
	default:
		return fmt.Errorf("unknown index type '%s'", options.Type)
	}

	for _, row := range t.Rows {
		err := index.AddRow(row)
		if err != nil {
			return fmt.Errorf("index row: %w, data: %s", err, string(row.Payload))
		}
	}
	t.Indexes[options.Column] = index

	return nil
}

// FindBy resolves value in the unique index of column and decodes the row
// into data.
func (t *Table) FindBy(column string, value string, data interface{}) error {

	row, err := t.FindByRow(column, value)
	if err != nil {
		return err
	}

	return unmarshalRow(row, data)
}

func (t *Table) FindByRow(column string, value string) (*Row, error) {

	index, ok := t.Indexes[column]
	if !ok {
		return nil, fmt.Errorf("column '%s' is not indexed", column)
	}

	unique, ok := index.(*UniqueIndex)
	if !ok {
		return nil, fmt.Errorf("index '%s' is not unique", column)
	}

	row, ok := unique.FindUnique(value)
	if !ok {
		return nil, fmt.Errorf("%s '%s' not found", column, value)
	}

	return row, nil
}

func indexInsert(indexes map[string]Index, row *Row) (err error) {
	for _, index := range indexes {
		err = index.AddRow(row)
		if err != nil {
			// TODO: undo previous work? two phases (check+commit) ?
			break
		}
	}

	return
}

func indexRemove(indexes map[string]Index, row *Row) (err error) {
	for _, index := range indexes {
		err = index.RemoveRow(row)
		if err != nil {
			break
		}
	}

	return
}
