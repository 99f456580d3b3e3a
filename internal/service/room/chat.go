package room

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
)

type SendMessageParams struct {
	SenderId string
	RoomId   string
	Message  string
}

type SendMessageResponse struct {
	Message ChatMessage
	Conns   []*websocket.Conn
}

func (s service) SendMessage(ctx context.Context, params *SendMessageParams) (SendMessageResponse, error) {
	if err := s.checkMember(params.SenderId, params.RoomId); err != nil {
		return SendMessageResponse{}, err
	}

	message := strings.TrimSpace(params.Message)
	if message == "" || len([]rune(message)) > s.cfg.MessageMaxLen {
		return SendMessageResponse{}, ErrInvalidInput
	}

	sess, err := s.sessionRepo.GetSession(params.SenderId)
	if err != nil {
		return SendMessageResponse{}, ErrNotInRoom
	}

	chatMessage := ChatMessage{
		MessageId: uuid.NewString(),
		SenderId:  params.SenderId,
		Username:  sess.Username,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}

	if err := s.roomRepo.AppendChatMessage(params.RoomId, chatMessage.MessageId); err != nil {
		s.logger.InfoContext(ctx, "failed to append chat message", "error", err)
		return SendMessageResponse{}, err
	}

	return SendMessageResponse{
		Message: chatMessage,
		Conns:   s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}

type ReactParams struct {
	SenderId  string
	RoomId    string
	MessageId string
	Emoji     string
	Action    string
}

type ReactResponse struct {
	Reaction ChatReaction
	Conns    []*websocket.Conn
}

func (s service) React(ctx context.Context, params *ReactParams) (ReactResponse, error) {
	if err := s.checkMember(params.SenderId, params.RoomId); err != nil {
		return ReactResponse{}, err
	}

	if params.Action != "add" && params.Action != "remove" {
		return ReactResponse{}, ErrInvalidInput
	}

	if !s.roomRepo.HasChatMessage(params.RoomId, params.MessageId) {
		return ReactResponse{}, roomRepo.ErrMessageNotFound
	}

	sess, err := s.sessionRepo.GetSession(params.SenderId)
	if err != nil {
		return ReactResponse{}, ErrNotInRoom
	}

	return ReactResponse{
		Reaction: ChatReaction{
			MessageId: params.MessageId,
			Emoji:     params.Emoji,
			Action:    params.Action,
			SenderId:  params.SenderId,
			Username:  sess.Username,
		},
		Conns: s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}
