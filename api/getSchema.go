package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/anytable/anytable/tabular"
)

func getSchema(ctx context.Context) (tabular.Schema, error) {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")

	t, err := s.GetTable(tableName)
	if err != nil {
		return tabular.Schema{}, err
	}

	return t.Schema()
}
