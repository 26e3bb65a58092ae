package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/anytable/anytable/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		injectServicer(s),
	)

	v1.Resource("/tables").
		WithActions(
			box.Get(listTables),
			box.Post(createTable),
		)

	v1.Resource("/tables/{tableName}").
		WithActions(
			box.Get(getTable),
			box.ActionPost(insert),
			box.ActionPost(find),
			box.ActionPost(createIndex),
			box.ActionPost(listIndexes),
			box.ActionPost(dropTable),
		)

	v1.Resource("/tables/{tableName}/schema").
		WithActions(
			box.Get(getSchema),
		)

	v1.Resource("/tables/{tableName}/rows").
		WithActions(
			box.Get(getRows),
		)

	v1.Resource("/tables/{tableName}/columns").
		WithActions(
			box.Get(getColumns),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "AnyTable"
	spec.Info.Description = "A durable table store where every table speaks the tabular contract: rows and columns for any consumer."
	b.Handle("GET", "/openapi.json", func(r *http.Request) any {

		spec.Servers = []boxopenapi.Server{
			{
				Url: "https://" + r.Host,
			},
			{
				Url: "http://" + r.Host,
			},
		}

		return spec
	})

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(SetServicer(ctx, s))
		}
	}
}
