package api

import (
	"context"
	"net/http"

	"github.com/anytable/anytable/service"
	"github.com/anytable/anytable/tabular"
)

type createTableRequest struct {
	Name    string           `json:"name"`
	Columns []tabular.Column `json:"columns"`
}

func createTable(ctx context.Context, w http.ResponseWriter, input *createTableRequest) (*service.TableInfo, error) {

	s := GetServicer(ctx)

	schema, err := tabular.NewSchema(input.Columns...)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, err
	}

	t, err := s.CreateTable(input.Name, schema)
	if err == service.ErrorTableAlreadyExists {
		return nil, err
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return service.Info(input.Name, t), nil
}
