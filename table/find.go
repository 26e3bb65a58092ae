package table

import (
	"encoding/json"
	"fmt"

	"github.com/SierraSoftworks/connor"
)

func unmarshalRow(row *Row, data interface{}) error {
	return json.Unmarshal(row.Payload, data)
}

// FindOne decodes the first row into data.
func (t *Table) FindOne(data interface{}) {
	for _, row := range t.Rows {
		unmarshalRow(row, data)
		return
	}
}

// Find walks the table in storage order and calls f for every row matching
// the connor filter. An empty filter matches everything. The callback returns
// false to stop early.
func (t *Table) Find(filter map[string]interface{}, f func(row *Row) bool) error {

	hasFilter := len(filter) > 0

	for _, row := range t.Rows {

		if hasFilter {
			rowData := map[string]interface{}{}
			err := json.Unmarshal(row.Payload, &rowData)
			if err != nil {
				return fmt.Errorf("decode row %d: %w", row.I, err)
			}

			match, err := connor.Match(filter, rowData)
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if !f(row) {
			break
		}
	}

	return nil
}

func marshalOptions(options *IndexOptions) (json.RawMessage, error) {
	payload, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}
	return payload, nil
}
