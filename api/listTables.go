package api

import (
	"context"
	"sort"

	"github.com/anytable/anytable/service"
)

func listTables(ctx context.Context) ([]*service.TableInfo, error) {

	s := GetServicer(ctx)

	result := s.ListTables()
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}
