package controller

import "context"

type contextKey int

const (
	connIdCtxKey contextKey = iota
)

func withConnId(ctx context.Context, connId string) context.Context {
	return context.WithValue(ctx, connIdCtxKey, connId)
}

func (c controller) getConnIdFromCtx(ctx context.Context) string {
	connId, ok := ctx.Value(connIdCtxKey).(string)
	if !ok {
		return ""
	}

	return connId
}
