package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"

	"github.com/anytable/anytable/tabular"
)

// getRows streams the table as NDJSON, one typed row per line, by driving the
// tabular row iterator over the table.
func getRows(ctx context.Context, w http.ResponseWriter) error {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")
	t, err := s.GetTable(tableName)
	if err != nil {
		return err
	}

	it, err := tabular.Rows(t)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/x-ndjson")

	jsonWriter := json.NewEncoder(w)
	for it.Next() {
		err := jsonWriter.Encode(it.Row())
		if err != nil {
			return err
		}
	}

	return it.Err()
}
