package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type EmptyInput struct{}

type CreateRoomInput struct {
	RoomName string `json:"room_name" validate:"required,max=64"`
	HostName string `json:"host_name" validate:"required,max=32"`
}

func (c controller) handleCreateRoom(ctx context.Context, conn *websocket.Conn, input CreateRoomInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	connId := c.getConnIdFromCtx(ctx)

	createRoomResp, err := c.roomService.CreateRoom(ctx, &room.CreateRoomParams{
		ConnId:   connId,
		RoomName: input.RoomName,
		HostName: input.HostName,
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return c.writeToConn(ctx, conn, &Output{
		Type: "room:created",
		Payload: map[string]any{
			"room":         createRoomResp.Room,
			"rejoin_token": createRoomResp.RejoinToken,
		},
	})
}

type JoinRoomInput struct {
	RoomId   string `json:"room_id" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=32"`
}

func (c controller) handleJoinRoom(ctx context.Context, conn *websocket.Conn, input JoinRoomInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	connId := c.getConnIdFromCtx(ctx)

	joinRoomResp, err := c.roomService.JoinRoom(ctx, &room.JoinRoomParams{
		ConnId:   connId,
		RoomId:   input.RoomId,
		Username: input.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	if err := c.writeToConn(ctx, conn, &Output{
		Type: "room:joined",
		Payload: map[string]any{
			"room":         joinRoomResp.Room,
			"username":     joinRoomResp.Username,
			"rejoin_token": joinRoomResp.RejoinToken,
		},
	}); err != nil {
		return fmt.Errorf("failed to write to conn: %w", err)
	}

	c.broadcast(ctx, joinRoomResp.Conns, &Output{
		Type: "user:joined",
		Payload: map[string]any{
			"participant":  joinRoomResp.Joined,
			"participants": joinRoomResp.Room.Participants,
		},
	})
	c.broadcastParticipantsList(ctx, joinRoomResp.Conns, joinRoomResp.Room.Participants)
	c.broadcastSystemMessage(ctx, joinRoomResp.Conns, fmt.Sprintf("%s joined the room", joinRoomResp.Username))

	return nil
}

type RejoinRoomInput struct {
	RoomId      string `json:"room_id" validate:"required,max=64"`
	RejoinToken string `json:"rejoin_token" validate:"required,max=64"`
}

func (c controller) handleRejoinRoom(ctx context.Context, conn *websocket.Conn, input RejoinRoomInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	connId := c.getConnIdFromCtx(ctx)

	rejoinResp, err := c.roomService.RejoinRoom(ctx, &room.RejoinRoomParams{
		ConnId:      connId,
		RoomId:      input.RoomId,
		RejoinToken: input.RejoinToken,
	})
	if err != nil {
		return fmt.Errorf("failed to rejoin room: %w", err)
	}

	if err := c.writeToConn(ctx, conn, &Output{
		Type: "room:joined",
		Payload: map[string]any{
			"room":         rejoinResp.Room,
			"username":     rejoinResp.Username,
			"rejoin_token": rejoinResp.RejoinToken,
		},
	}); err != nil {
		return fmt.Errorf("failed to write to conn: %w", err)
	}

	c.broadcast(ctx, rejoinResp.Conns, &Output{
		Type: "user:joined",
		Payload: map[string]any{
			"participant":  rejoinResp.Joined,
			"participants": rejoinResp.Room.Participants,
		},
	})
	c.broadcastParticipantsList(ctx, rejoinResp.Conns, rejoinResp.Room.Participants)

	return nil
}

func (c controller) handleLeaveRoom(ctx context.Context, conn *websocket.Conn, _ EmptyInput) error {
	connId := c.getConnIdFromCtx(ctx)

	leaveResp, err := c.roomService.LeaveRoom(ctx, &room.LeaveRoomParams{ConnId: connId})
	if err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	if leaveResp.Closed {
		closed := &Output{
			Type:    "room:closed",
			Payload: map[string]any{"room_id": leaveResp.RoomId},
		}
		c.broadcast(ctx, leaveResp.Conns, closed)
		return c.writeToConn(ctx, conn, closed)
	}

	c.broadcast(ctx, leaveResp.Conns, &Output{
		Type: "user:left",
		Payload: map[string]any{
			"user_id":  connId,
			"username": leaveResp.Username,
		},
	})
	if leaveResp.Room != nil {
		c.broadcastParticipantsList(ctx, leaveResp.Conns, leaveResp.Room.Participants)
	}
	c.broadcastSystemMessage(ctx, leaveResp.Conns, fmt.Sprintf("%s left the room", leaveResp.Username))

	return nil
}

type HeartbeatInput struct {
	RoomId string `json:"room_id"`
}

// keep-alive only, no state effect
func (c controller) handleHeartbeat(_ context.Context, _ *websocket.Conn, _ HeartbeatInput) error {
	return nil
}

// handleDisconnect runs when the read loop ends, gracefully or not. The
// host succession policy lives in the service; this only fans out events.
func (c controller) handleDisconnect(ctx context.Context, conn *websocket.Conn) {
	connId, err := c.connRepo.RemoveByConn(conn)
	if err != nil {
		return
	}

	disconnectResp, err := c.roomService.DisconnectUser(ctx, &room.DisconnectUserParams{ConnId: connId})
	if err != nil {
		if !errors.Is(err, room.ErrNotInRoom) {
			c.logger.WarnContext(ctx, "failed to disconnect user", "error", err)
		}
		return
	}

	if disconnectResp.Closed {
		c.broadcast(ctx, disconnectResp.Conns, &Output{
			Type:    "room:closed",
			Payload: map[string]any{"room_id": disconnectResp.RoomId},
		})
		return
	}

	c.broadcast(ctx, disconnectResp.Conns, &Output{
		Type: "user:left",
		Payload: map[string]any{
			"user_id":  connId,
			"username": disconnectResp.Username,
		},
	})

	if disconnectResp.HostChanged {
		c.broadcast(ctx, disconnectResp.Conns, &Output{
			Type: "host:changed",
			Payload: map[string]any{
				"new_host_id": disconnectResp.NewHostId,
				"username":    disconnectResp.NewHostUsername,
			},
		})
		c.broadcastSystemMessage(ctx, disconnectResp.Conns,
			fmt.Sprintf("%s is now the host", disconnectResp.NewHostUsername))
	}

	if disconnectResp.Room != nil {
		c.broadcastParticipantsList(ctx, disconnectResp.Conns, disconnectResp.Room.Participants)
	}
}

func (c controller) broadcastParticipantsList(ctx context.Context, conns []*websocket.Conn, participants []room.Participant) {
	c.broadcast(ctx, conns, &Output{
		Type:    "participants:list",
		Payload: map[string]any{"participants": participants},
	})
}
