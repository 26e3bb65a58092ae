package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/anytable/anytable/tabular"
)

// getColumns materializes the table column-wise through the tabular contract
// and returns the whole collection as one JSON object.
func getColumns(ctx context.Context) (*tabular.ColumnSet, error) {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")
	t, err := s.GetTable(tableName)
	if err != nil {
		return nil, err
	}

	return tabular.Columns(t)
}
