package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/anytable/anytable/table"
)

func createIndex(ctx context.Context, w http.ResponseWriter, input *table.IndexOptions) (*table.IndexOptions, error) {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")
	t, err := s.GetTable(tableName)
	if err != nil {
		return nil, err
	}

	err = t.CreateIndex(input)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return input, nil
}
