package api

import (
	"context"

	"github.com/anytable/anytable/service"
)

const ContextServicerKey = "a41f9c52-8a0f-41c8-9e1e-2c1d61f5be2c"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer) // TODO: can raise panic :D
}
