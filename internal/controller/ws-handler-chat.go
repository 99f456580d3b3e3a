package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type SendMessageInput struct {
	RoomId  string `json:"room_id" validate:"required,max=64"`
	Message string `json:"message" validate:"required"`
}

func (c controller) handleSendMessage(ctx context.Context, conn *websocket.Conn, input SendMessageInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	sendMessageResp, err := c.roomService.SendMessage(ctx, &room.SendMessageParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		Message:  input.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	c.broadcast(ctx, sendMessageResp.Conns, &Output{
		Type:    "chat:message",
		Payload: sendMessageResp.Message,
	})

	return nil
}

type ReactionInput struct {
	RoomId    string `json:"room_id" validate:"required,max=64"`
	MessageId string `json:"message_id" validate:"required,max=64"`
	Emoji     string `json:"emoji" validate:"required,max=16"`
	Action    string `json:"action" validate:"required,oneof=add remove"`
}

func (c controller) handleReaction(ctx context.Context, conn *websocket.Conn, input ReactionInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	reactResp, err := c.roomService.React(ctx, &room.ReactParams{
		SenderId:  c.getConnIdFromCtx(ctx),
		RoomId:    input.RoomId,
		MessageId: input.MessageId,
		Emoji:     input.Emoji,
		Action:    input.Action,
	})
	if err != nil {
		return fmt.Errorf("failed to react: %w", err)
	}

	c.broadcast(ctx, reactResp.Conns, &Output{
		Type:    "chat:reaction",
		Payload: reactResp.Reaction,
	})

	return nil
}
