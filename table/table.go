// Package table implements a durable, schema-typed, append-only table. Every
// change is journaled to a single file and replayed on open. A Table declares
// both the cell and the column capability of the tabular contract, so it can
// be consumed through tabular.Rows and tabular.Columns directly.
package table

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/uuid"

	"github.com/anytable/anytable/tabular"
)

type Table struct {
	filename  string // Just informative...
	file      *os.File
	schema    tabular.Schema
	Rows      []*Row
	rowsMutex *sync.Mutex
	Indexes   map[string]Index
}

// Row is one stored record: its position in Rows and the raw JSON payload.
type Row struct {
	I       int
	Payload json.RawMessage
}

// Create starts a new table journal with the given schema. It fails if the
// file already has content.
func Create(filename string, schema tabular.Schema) (*Table, error) {

	info, err := os.Stat(filename)
	if err == nil && info.Size() > 0 {
		return nil, fmt.Errorf("table file '%s' is not empty", filename)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	t := &Table{
		filename:  filename,
		file:      file,
		schema:    schema,
		Rows:      []*Row{},
		rowsMutex: &sync.Mutex{},
		Indexes:   map[string]Index{},
	}

	payload, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("json encode schema: %w", err)
	}

	err = t.persist(commandCreate, payload)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Open replays an existing table journal into memory.
func Open(filename string) (*Table, error) {

	f, err := os.OpenFile(filename, os.O_RDONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for read: %w", err)
	}
	defer f.Close()

	t := &Table{
		filename:  filename,
		Rows:      []*Row{},
		rowsMutex: &sync.Mutex{},
		Indexes:   map[string]Index{},
	}

	j := json.NewDecoder(f)
	first := true
	for {
		command := &Command{}
		err := j.Decode(&command)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}

		if first {
			if command.Name != commandCreate {
				return nil, fmt.Errorf("journal must start with a create command, got '%s'", command.Name)
			}
			err := json.Unmarshal(command.Payload, &t.schema)
			if err != nil {
				return nil, fmt.Errorf("decode schema: %w", err)
			}
			first = false
			continue
		}

		switch command.Name {
		case commandInsert:
			_, err := t.addRow(command.Payload)
			if err != nil {
				return nil, err
			}
		case commandRemove:
			params := struct {
				I int `json:"i"`
			}{}
			json.Unmarshal(command.Payload, &params)
			if params.I >= len(t.Rows) {
				fmt.Printf("WARNING: remove row %d: out of range\n", params.I)
				continue
			}
			err := t.removeByRow(t.Rows[params.I], false)
			if err != nil {
				fmt.Printf("WARNING: remove row %d: %s\n", params.I, err.Error())
			}
		case commandPatch:
			params := struct {
				I     int             `json:"i"`
				Merge json.RawMessage `json:"merge"`
			}{}
			json.Unmarshal(command.Payload, &params)
			if params.I >= len(t.Rows) {
				fmt.Printf("WARNING: patch row %d: out of range\n", params.I)
				continue
			}
			err := t.patchByRow(t.Rows[params.I], params.Merge, false)
			if err != nil {
				fmt.Printf("WARNING: patch row %d: %s\n", params.I, err.Error())
			}
		case commandIndex:
			options := &IndexOptions{}
			json.Unmarshal(command.Payload, options)
			err := t.indexRows(options)
			if err != nil {
				fmt.Printf("WARNING: create index '%s': %s\n", options.Column, err.Error())
			}
		default:
			return nil, fmt.Errorf("unknown journal command '%s'", command.Name)
		}
	}

	if first {
		return nil, fmt.Errorf("journal '%s' is empty", filename)
	}

	// Reopen for append only
	t.file, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	return t, nil
}

func (t *Table) persist(name string, payload json.RawMessage) error {

	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		Payload:   payload,
	}

	err := json.NewEncoder(t.file).Encode(command)
	if err != nil {
		return fmt.Errorf("json encode command: %w", err)
	}

	return nil
}

// validate checks that payload carries a well-typed value for every schema
// column.
func (t *Table) validate(payload json.RawMessage) error {
	for i, col := range t.schema.Columns() {
		value, exists := lookupColumn(payload, col.Name)
		if !exists {
			return fmt.Errorf("column '%s' (%d) is missing", col.Name, i+1)
		}
		_, err := col.Kind.Normalize(value)
		if err != nil {
			return fmt.Errorf("column '%s': %w", col.Name, err)
		}
	}
	return nil
}

func (t *Table) addRow(payload json.RawMessage) (*Row, error) {

	err := t.validate(payload)
	if err != nil {
		return nil, err
	}

	row := &Row{
		Payload: payload,
	}

	err = indexInsert(t.Indexes, row)
	if err != nil {
		return nil, err
	}

	t.rowsMutex.Lock()
	row.I = len(t.Rows)
	t.Rows = append(t.Rows, row)
	t.rowsMutex.Unlock()

	return row, nil
}

// Insert validates item against the schema, stores it and journals the
// change. Item can be a map or any struct that marshals to a JSON object.
func (t *Table) Insert(item interface{}) (*Row, error) {
	if t.file == nil {
		return nil, fmt.Errorf("table is closed")
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	row, err := t.addRow(payload)
	if err != nil {
		return nil, err
	}

	err = t.persist(commandInsert, payload)
	if err != nil {
		return nil, err
	}

	return row, nil
}

// Remove deletes the row, swap-filling its slot.
func (t *Table) Remove(r *Row) error {
	return t.removeByRow(r, true)
}

func (t *Table) removeByRow(row *Row, persist bool) error {

	var i int
	err := lockBlock(t.rowsMutex, func() error {
		i = row.I
		if len(t.Rows) <= i {
			return fmt.Errorf("row %d does not exist", i)
		}

		err := indexRemove(t.Indexes, row)
		if err != nil {
			return fmt.Errorf("could not free index")
		}

		last := len(t.Rows) - 1
		t.Rows[i] = t.Rows[last]
		t.Rows[i].I = i
		t.Rows = t.Rows[:last]
		return nil
	})
	if err != nil {
		return err
	}

	if !persist {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"i": i,
	})
	if err != nil {
		return err
	}

	return t.persist(commandRemove, payload)
}

// Patch applies an RFC 7386 merge patch to the row. The merged payload must
// still satisfy the schema.
func (t *Table) Patch(row *Row, merge interface{}) error {

	mergeBytes, err := json.Marshal(merge)
	if err != nil {
		return fmt.Errorf("json encode merge: %w", err)
	}

	err = t.patchByRow(row, mergeBytes, true)
	if err != nil {
		return err
	}

	return nil
}

func (t *Table) patchByRow(row *Row, merge json.RawMessage, persist bool) error {

	patched, err := jsonpatch.MergePatch(row.Payload, merge)
	if err != nil {
		return fmt.Errorf("merge patch: %w", err)
	}

	err = t.validate(patched)
	if err != nil {
		return err
	}

	err = indexRemove(t.Indexes, row)
	if err != nil {
		return fmt.Errorf("could not free index")
	}
	row.Payload = patched
	err = indexInsert(t.Indexes, row)
	if err != nil {
		// TODO: reindex the previous payload instead of leaving the row out
		return err
	}

	if !persist {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"i":     row.I,
		"merge": merge,
	})
	if err != nil {
		return err
	}

	return t.persist(commandPatch, payload)
}

// Traverse visits every row payload in storage order.
func (t *Table) Traverse(f func(row *Row)) {
	for _, row := range t.Rows {
		f(row)
	}
}

func (t *Table) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}

// Drop closes the table and removes its journal file.
func (t *Table) Drop() error {
	err := t.Close()
	if err != nil {
		return err
	}
	return os.Remove(t.filename)
}

func lockBlock(m *sync.Mutex, f func() error) error {
	m.Lock()
	defer m.Unlock()
	return f()
}
