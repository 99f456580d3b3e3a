package controller

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (c controller) writeToConn(ctx context.Context, conn *websocket.Conn, output *Output) error {
	if conn == nil {
		return nil
	}

	if err := conn.WriteJSON(output); err != nil {
		c.logger.DebugContext(ctx, "failed to write to conn", "error", err)
		return err
	}

	return nil
}

func (c controller) broadcast(ctx context.Context, conns []*websocket.Conn, output *Output) {
	for _, conn := range conns {
		// a single dead connection must not break delivery to the rest
		_ = c.writeToConn(ctx, conn, output)
	}
}

func (c controller) writeError(ctx context.Context, conn *websocket.Conn, err error) {
	c.writeToConn(ctx, conn, &Output{
		Type:    "error",
		Payload: map[string]any{"message": userMessage(err)},
	})
}

func (c controller) broadcastSystemMessage(ctx context.Context, conns []*websocket.Conn, message string) {
	c.broadcast(ctx, conns, &Output{
		Type: "system:message",
		Payload: map[string]any{
			"message":   message,
			"timestamp": time.Now().UnixMilli(),
		},
	})
}
