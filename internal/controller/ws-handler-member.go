package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type CohostInput struct {
	RoomId string `json:"room_id" validate:"required,max=64"`
	UserId string `json:"user_id" validate:"required,max=64"`
}

func (c controller) handlePromoteCohost(ctx context.Context, conn *websocket.Conn, input CohostInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	promoteResp, err := c.roomService.PromoteCohost(ctx, &room.PromoteCohostParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		UserId:   input.UserId,
	})
	if err != nil {
		return fmt.Errorf("failed to promote cohost: %w", err)
	}

	c.broadcast(ctx, promoteResp.Conns, &Output{
		Type: "user:promoted-cohost",
		Payload: map[string]any{
			"user_id":  promoteResp.UserId,
			"username": promoteResp.Username,
		},
	})
	c.broadcastParticipantsList(ctx, promoteResp.Conns, promoteResp.Participants)

	return nil
}

func (c controller) handleDemoteCohost(ctx context.Context, conn *websocket.Conn, input CohostInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	demoteResp, err := c.roomService.DemoteCohost(ctx, &room.DemoteCohostParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		UserId:   input.UserId,
	})
	if err != nil {
		return fmt.Errorf("failed to demote cohost: %w", err)
	}

	c.broadcast(ctx, demoteResp.Conns, &Output{
		Type: "user:demoted-cohost",
		Payload: map[string]any{
			"user_id":  demoteResp.UserId,
			"username": demoteResp.Username,
		},
	})
	c.broadcastParticipantsList(ctx, demoteResp.Conns, demoteResp.Participants)

	return nil
}
