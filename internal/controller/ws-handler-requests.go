package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type SubmitSongRequestInput struct {
	RoomId string    `json:"room_id" validate:"required,max=64"`
	Song   SongInput `json:"song" validate:"required"`
}

func (c controller) handleSubmitSongRequest(ctx context.Context, conn *websocket.Conn, input SubmitSongRequestInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	submitResp, err := c.roomService.SubmitSongRequest(ctx, &room.SubmitSongRequestParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		Song:     input.Song.toSong(),
	})
	if err != nil {
		return fmt.Errorf("failed to submit song request: %w", err)
	}

	c.broadcastSongRequests(ctx, submitResp.Conns, submitResp.Requests)

	return nil
}

type ResolveSongRequestInput struct {
	RoomId    string `json:"room_id" validate:"required,max=64"`
	RequestId string `json:"request_id" validate:"required,max=64"`
}

func (c controller) handleApproveSongRequest(ctx context.Context, conn *websocket.Conn, input ResolveSongRequestInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	approveResp, err := c.roomService.ApproveSongRequest(ctx, &room.ResolveSongRequestParams{
		SenderId:  c.getConnIdFromCtx(ctx),
		RoomId:    input.RoomId,
		RequestId: input.RequestId,
	})
	if err != nil {
		return fmt.Errorf("failed to approve song request: %w", err)
	}

	c.broadcastSongRequests(ctx, approveResp.Conns, approveResp.Requests)
	c.broadcastPlaylist(ctx, approveResp.Conns, approveResp.Playlist)

	return nil
}

func (c controller) handleRejectSongRequest(ctx context.Context, conn *websocket.Conn, input ResolveSongRequestInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	rejectResp, err := c.roomService.RejectSongRequest(ctx, &room.ResolveSongRequestParams{
		SenderId:  c.getConnIdFromCtx(ctx),
		RoomId:    input.RoomId,
		RequestId: input.RequestId,
	})
	if err != nil {
		return fmt.Errorf("failed to reject song request: %w", err)
	}

	c.broadcastSongRequests(ctx, rejectResp.Conns, rejectResp.Requests)

	return nil
}

func (c controller) broadcastSongRequests(ctx context.Context, conns []*websocket.Conn, requests []room.SongRequest) {
	c.broadcast(ctx, conns, &Output{
		Type:    "song:requests:update",
		Payload: map[string]any{"requests": requests},
	})
}
