package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
)

// insert reads a stream of JSON objects (NDJSON friendly) and appends each
// one as a row.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")
	t, err := s.GetTable(tableName)
	if err != nil {
		return err
	}

	jsonReader := json.NewDecoder(r.Body)

	for i := 0; true; i++ {
		item := map[string]any{}
		err := jsonReader.Decode(&item)
		if err == io.EOF {
			if i == 0 {
				w.WriteHeader(http.StatusNoContent)
			}
			return nil
		}
		if err != nil {
			if i == 0 {
				w.WriteHeader(http.StatusBadRequest)
			}
			return err
		}
		_, err = t.Insert(item)
		if err != nil {
			if i == 0 {
				w.WriteHeader(http.StatusConflict)
			}
			return fmt.Errorf("insert: %w", err)
		}
		if i == 0 {
			w.WriteHeader(http.StatusCreated)
		}
	}

	return nil
}
