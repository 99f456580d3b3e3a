package controller

import (
	"errors"

	roomRepo "github.com/listenroom/server/internal/repository/room"
	tokenRepo "github.com/listenroom/server/internal/repository/token/redis"
	"github.com/listenroom/server/internal/service/room"
	"github.com/listenroom/server/pkg/wsrouter"
)

var ErrValidationError = errors.New("validation error")

// userMessage maps an internal error to the requester-facing message. Every
// unrecognized error collapses to a generic message so internals never leak.
func userMessage(err error) string {
	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, roomRepo.ErrRoomFull):
		return "room is full"
	case errors.Is(err, roomRepo.ErrSongNotFound):
		return "song not found"
	case errors.Is(err, roomRepo.ErrRequestNotFound):
		return "song request not found"
	case errors.Is(err, roomRepo.ErrMessageNotFound):
		return "message not found"
	case errors.Is(err, roomRepo.ErrParticipantNotFound):
		return "participant not found"
	case errors.Is(err, roomRepo.ErrInvalidIndex):
		return "invalid index"
	case errors.Is(err, roomRepo.ErrQueueEmpty):
		return "queue is empty"
	case errors.Is(err, roomRepo.ErrNoCurrentSong):
		return "no current song"
	case errors.Is(err, roomRepo.ErrPlaylistLimitReached):
		return "playlist limit reached"
	case errors.Is(err, tokenRepo.ErrTokenNotFound):
		return "rejoin token expired"
	case errors.Is(err, room.ErrPermissionDenied):
		return "permission denied"
	case errors.Is(err, room.ErrNotInRoom):
		return "not in a room"
	case errors.Is(err, room.ErrInvalidInput), errors.Is(err, ErrValidationError),
		errors.Is(err, wsrouter.ErrInvalidPayload):
		return "invalid input"
	case errors.Is(err, wsrouter.ErrUnknownMessageType):
		return "unknown message type"
	default:
		return "internal error"
	}
}
