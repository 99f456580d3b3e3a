package controller

import (
	"net/http"

	"github.com/google/uuid"
)

// serveWS upgrades the request and serves the message loop until the
// connection dies. Every connection gets a fresh conn id; all room state
// tied to it is torn down on exit.
func (c controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.InfoContext(r.Context(), "failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	connId := uuid.NewString()
	if err := c.connRepo.Add(conn, connId); err != nil {
		c.logger.WarnContext(r.Context(), "failed to register connection", "error", err)
		return
	}

	ctx := withConnId(r.Context(), connId)

	c.logger.InfoContext(ctx, "connection established", "conn_id", connId)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "connection closed", "conn_id", connId, "error", err)
	}

	c.handleDisconnect(ctx, conn)
}
