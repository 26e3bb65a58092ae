package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fulldump/box"

	"github.com/anytable/anytable/table"
	"github.com/anytable/anytable/utils"
)

// find streams matching rows as NDJSON. Modes: fullscan (connor filter),
// unique (exact lookup on a unique index) and ordered (walk a btree index).
func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	input := struct {
		Mode string
	}{
		Mode: "fullscan",
	}
	err = json.Unmarshal(requestBody, &input)
	if err != nil {
		return err
	}

	f, exist := findModes[input.Mode]
	if !exist {
		box.GetResponse(ctx).WriteHeader(http.StatusBadRequest)
		return fmt.Errorf("bad mode '%s', must be [%s]", input.Mode, strings.Join(utils.GetKeys(findModes), "|"))
	}

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")
	t, err := s.GetTable(tableName)
	if err != nil {
		return err
	}

	return f(requestBody, t, w)
}

var findModes = map[string]func(input []byte, t *table.Table, w http.ResponseWriter) error{
	"fullscan": findFullscan,
	"unique":   findUnique,
	"ordered":  findOrdered,
}

func writeRow(w http.ResponseWriter) func(r *table.Row) {
	return func(row *table.Row) {
		w.Write(row.Payload)
		w.Write([]byte("\n"))
	}
}

func findFullscan(input []byte, t *table.Table, w http.ResponseWriter) error {

	params := &struct {
		Filter map[string]interface{}
		Skip   int64
		Limit  int64
	}{
		Filter: map[string]interface{}{},
		Skip:   0,
		Limit:  1,
	}
	err := json.Unmarshal(input, &params)
	if err != nil {
		return err
	}

	emit := writeRow(w)
	skip := params.Skip
	limit := params.Limit

	return t.Find(params.Filter, func(row *table.Row) bool {
		if limit == 0 {
			return false
		}
		if skip > 0 {
			skip--
			return true
		}
		limit--
		emit(row)
		return true
	})
}

func findUnique(input []byte, t *table.Table, w http.ResponseWriter) error {

	params := &struct {
		Column string
		Value  string
	}{}
	err := json.Unmarshal(input, &params)
	if err != nil {
		return err
	}

	row, err := t.FindByRow(params.Column, params.Value)
	if err != nil {
		return err
	}

	writeRow(w)(row)
	return nil
}

func findOrdered(input []byte, t *table.Table, w http.ResponseWriter) error {

	params := &struct {
		Column  string
		Reverse bool
		Limit   int64
	}{
		Limit: 1,
	}
	err := json.Unmarshal(input, &params)
	if err != nil {
		return err
	}

	index, exist := t.Indexes[params.Column]
	if !exist {
		return fmt.Errorf("column '%s' is not indexed", params.Column)
	}
	ordered, ok := index.(*table.OrderedIndex)
	if !ok {
		return fmt.Errorf("index '%s' is not ordered", params.Column)
	}

	emit := writeRow(w)
	limit := params.Limit
	ordered.Traverse(params.Reverse, func(row *table.Row) bool {
		if limit == 0 {
			return false
		}
		limit--
		emit(row)
		return true
	})

	return nil
}
