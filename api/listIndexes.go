package api

import (
	"context"
	"sort"

	"github.com/fulldump/box"
)

func listIndexes(ctx context.Context) ([]string, error) {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")
	t, err := s.GetTable(tableName)
	if err != nil {
		return nil, err
	}

	columns := []string{}
	for column := range t.Indexes {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	return columns, nil
}
