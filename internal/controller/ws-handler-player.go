package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type PlayerInput struct {
	RoomId string `json:"room_id" validate:"required,max=64"`
}

func (c controller) playerParams(ctx context.Context, input PlayerInput) *room.PlayerParams {
	return &room.PlayerParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
	}
}

func (c controller) handlePlaySong(ctx context.Context, conn *websocket.Conn, input PlayerInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	playResp, err := c.roomService.Play(ctx, c.playerParams(ctx, input))
	if err != nil {
		return fmt.Errorf("failed to play song: %w", err)
	}

	c.broadcastPlaylist(ctx, playResp.Conns, playResp.Playlist)

	return nil
}

func (c controller) handleSkipSong(ctx context.Context, conn *websocket.Conn, input PlayerInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	skipResp, err := c.roomService.Skip(ctx, c.playerParams(ctx, input))
	if err != nil {
		return fmt.Errorf("failed to skip song: %w", err)
	}

	c.broadcastPlaylist(ctx, skipResp.Conns, skipResp.Playlist)

	return nil
}

// handleAutoAdvance is fired by the host client when the current track ends.
// Failures stay silent so a stale end-of-track signal never surfaces an error
// popup on the host.
func (c controller) handleAutoAdvance(ctx context.Context, conn *websocket.Conn, input PlayerInput) error {
	if _, ok := c.validate.Validate(input); !ok {
		return nil
	}

	advanceResp, err := c.roomService.AutoAdvance(ctx, c.playerParams(ctx, input))
	if err != nil {
		c.logger.DebugContext(ctx, "auto advance skipped", "error", err)
		return nil
	}

	c.broadcastPlaylist(ctx, advanceResp.Conns, advanceResp.Playlist)

	return nil
}

func (c controller) handlePreviousSong(ctx context.Context, conn *websocket.Conn, input PlayerInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	previousResp, err := c.roomService.Previous(ctx, c.playerParams(ctx, input))
	if err != nil {
		return fmt.Errorf("failed to rewind song: %w", err)
	}

	c.broadcastPlaylist(ctx, previousResp.Conns, previousResp.Playlist)

	return nil
}

func (c controller) handlePauseSong(ctx context.Context, conn *websocket.Conn, input PlayerInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	pauseResp, err := c.roomService.Pause(ctx, c.playerParams(ctx, input))
	if err != nil {
		return fmt.Errorf("failed to pause song: %w", err)
	}

	c.broadcastPlaylist(ctx, pauseResp.Conns, pauseResp.Playlist)

	return nil
}

func (c controller) handleResumeSong(ctx context.Context, conn *websocket.Conn, input PlayerInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	resumeResp, err := c.roomService.Resume(ctx, c.playerParams(ctx, input))
	if err != nil {
		return fmt.Errorf("failed to resume song: %w", err)
	}

	c.broadcastPlaylist(ctx, resumeResp.Conns, resumeResp.Playlist)

	return nil
}

type PlaySpecificInput struct {
	RoomId string `json:"room_id" validate:"required,max=64"`
	SongId string `json:"song_id" validate:"required,max=64"`
}

func (c controller) handlePlaySpecificSong(ctx context.Context, conn *websocket.Conn, input PlaySpecificInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	playResp, err := c.roomService.PlaySpecific(ctx, &room.PlaySpecificParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		SongId:   input.SongId,
	})
	if err != nil {
		return fmt.Errorf("failed to play specific song: %w", err)
	}

	c.broadcastPlaylist(ctx, playResp.Conns, playResp.Playlist)

	return nil
}
