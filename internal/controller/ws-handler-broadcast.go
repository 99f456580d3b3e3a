package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type BroadcastInput struct {
	RoomId string `json:"room_id" validate:"required,max=64"`
}

func (c controller) handleStartBroadcast(ctx context.Context, conn *websocket.Conn, input BroadcastInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	startResp, err := c.roomService.StartBroadcast(ctx, &room.BroadcastParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
	})
	if err != nil {
		return fmt.Errorf("failed to start broadcast: %w", err)
	}

	c.broadcast(ctx, startResp.Conns, &Output{
		Type:    "broadcast:started",
		Payload: map[string]any{"room_id": input.RoomId},
	})

	return nil
}

func (c controller) handleStopBroadcast(ctx context.Context, conn *websocket.Conn, input BroadcastInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	stopResp, err := c.roomService.StopBroadcast(ctx, &room.BroadcastParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
	})
	if err != nil {
		return fmt.Errorf("failed to stop broadcast: %w", err)
	}

	c.broadcast(ctx, stopResp.Conns, &Output{
		Type:    "broadcast:stopped",
		Payload: map[string]any{"room_id": input.RoomId},
	})

	return nil
}

type BroadcastAudioInput struct {
	Data      string  `json:"data" validate:"required"`
	Timestamp int64   `json:"timestamp"`
	Duration  float64 `json:"duration"`
	Quality   string  `json:"quality" validate:"max=16"`
}

// handleBroadcastAudio relays an opaque audio chunk to every listener in the
// sender's room. The chunk is forwarded as received, never stored.
func (c controller) handleBroadcastAudio(ctx context.Context, conn *websocket.Conn, input BroadcastAudioInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	relayResp, err := c.roomService.RelayAudio(ctx, &room.RelayAudioParams{
		SenderId: c.getConnIdFromCtx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to relay audio: %w", err)
	}

	c.broadcast(ctx, relayResp.Conns, &Output{
		Type:    "broadcast:audio",
		Payload: input,
	})

	return nil
}

type UpdateStatsInput struct {
	RoomId      string  `json:"room_id" validate:"required,max=64"`
	Bitrate     int     `json:"bitrate" validate:"gte=0"`
	Latency     int     `json:"latency" validate:"gte=0"`
	BufferLevel float64 `json:"buffer_level" validate:"gte=0"`
	Quality     string  `json:"quality" validate:"max=16"`
}

func (c controller) handleUpdateStats(ctx context.Context, conn *websocket.Conn, input UpdateStatsInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	statsResp, err := c.roomService.UpdateStats(ctx, &room.UpdateStatsParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		Stats: room.Stats{
			Bitrate:     input.Bitrate,
			Latency:     input.Latency,
			BufferLevel: input.BufferLevel,
			Quality:     input.Quality,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	c.broadcast(ctx, statsResp.Conns, &Output{
		Type:    "broadcast:stats",
		Payload: statsResp.Stats,
	})

	return nil
}
