package controller

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.wsRequestIdMiddleware, c.wsLoggingMiddleware)
	mux.OnError(func(ctx context.Context, conn *websocket.Conn, err error) {
		c.logger.InfoContext(ctx, "ws handler error", "error", err)
		c.writeError(ctx, conn, err)
	})

	wsrouter.Handle(mux, "room:create", c.handleCreateRoom)
	wsrouter.Handle(mux, "room:join", c.handleJoinRoom)
	wsrouter.Handle(mux, "room:rejoin", c.handleRejoinRoom)
	wsrouter.Handle(mux, "room:leave", c.handleLeaveRoom)
	wsrouter.Handle(mux, "heartbeat", c.handleHeartbeat)

	wsrouter.Handle(mux, "song:add", c.handleAddSong)
	wsrouter.Handle(mux, "song:remove", c.handleRemoveSong)
	wsrouter.Handle(mux, "song:reorder", c.handleReorderSong)

	wsrouter.Handle(mux, "song:play", c.handlePlaySong)
	wsrouter.Handle(mux, "song:skip", c.handleSkipSong)
	wsrouter.Handle(mux, "song:previous", c.handlePreviousSong)
	wsrouter.Handle(mux, "song:pause", c.handlePauseSong)
	wsrouter.Handle(mux, "song:resume", c.handleResumeSong)
	wsrouter.Handle(mux, "song:playSpecific", c.handlePlaySpecificSong)
	wsrouter.Handle(mux, "song:autoAdvance", c.handleAutoAdvance)

	wsrouter.Handle(mux, "song:request", c.handleSubmitSongRequest)
	wsrouter.Handle(mux, "song:request:approve", c.handleApproveSongRequest)
	wsrouter.Handle(mux, "song:request:reject", c.handleRejectSongRequest)

	wsrouter.Handle(mux, "chat:message", c.handleSendMessage)
	wsrouter.Handle(mux, "chat:reaction", c.handleReaction)

	wsrouter.Handle(mux, "user:promote-cohost", c.handlePromoteCohost)
	wsrouter.Handle(mux, "user:demote-cohost", c.handleDemoteCohost)

	wsrouter.Handle(mux, "broadcast:start", c.handleStartBroadcast)
	wsrouter.Handle(mux, "broadcast:stop", c.handleStopBroadcast)
	wsrouter.Handle(mux, "broadcast:audio", c.handleBroadcastAudio)
	wsrouter.Handle(mux, "broadcast:stats", c.handleUpdateStats)

	return mux
}
