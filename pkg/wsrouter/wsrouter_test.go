package wsrouter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Name string `json:"name"`
}

func TestHandleUnmarshalsPayload(t *testing.T) {
	r := New()

	var got greeting
	Handle(r, "greet", func(ctx context.Context, conn *websocket.Conn, payload greeting) error {
		got = payload
		return nil
	})

	err := r.routes["greet"](context.Background(), nil, json.RawMessage(`{"name":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)
}

func TestHandleInvalidPayload(t *testing.T) {
	r := New()
	Handle(r, "greet", func(ctx context.Context, conn *websocket.Conn, payload greeting) error {
		return nil
	})

	err := r.routes["greet"](context.Background(), nil, json.RawMessage(`{`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestMiddlewareOrder(t *testing.T) {
	r := New()

	var order []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc[any]) HandlerFunc[any] {
			return func(ctx context.Context, conn *websocket.Conn, payload any) error {
				order = append(order, name)
				return next(ctx, conn, payload)
			}
		}
	}
	r.Use(mw("outer"), mw("inner"))

	Handle(r, "greet", func(ctx context.Context, conn *websocket.Conn, payload greeting) error {
		order = append(order, "handler")
		return nil
	})

	err := r.routes["greet"](context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestGetMessageTypeFromCtx(t *testing.T) {
	assert.Equal(t, "", GetMessageTypeFromCtx(context.Background()))

	ctx := context.WithValue(context.Background(), messageTypeKey, "room:create")
	assert.Equal(t, "room:create", GetMessageTypeFromCtx(ctx))
}
