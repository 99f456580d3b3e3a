package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/pkg/ctxlogger"
	"github.com/listenroom/server/pkg/wsrouter"
)

func (c controller) wsRequestIdMiddleware(next wsrouter.HandlerFunc[any]) wsrouter.HandlerFunc[any] {
	return func(ctx context.Context, conn *websocket.Conn, payload any) error {
		ctx = ctxlogger.AppendCtx(ctx, slog.String("request_id", c.generateTimeBasedId()))
		return next(ctx, conn, payload)
	}
}

func (c controller) wsLoggingMiddleware(next wsrouter.HandlerFunc[any]) wsrouter.HandlerFunc[any] {
	return func(ctx context.Context, conn *websocket.Conn, payload any) error {
		ctx = ctxlogger.AppendCtx(ctx,
			slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)),
			slog.String("conn_id", c.getConnIdFromCtx(ctx)),
		)

		start := time.Now()
		err := next(ctx, conn, payload)
		c.logger.DebugContext(ctx, "ws message handled",
			"duration", time.Since(start).String(),
			"ok", err == nil,
		)

		return err
	}
}
