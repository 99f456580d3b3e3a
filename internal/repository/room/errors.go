package room

import "errors"

var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomFull             = errors.New("room is full")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrSongNotFound         = errors.New("song not found")
	ErrNoCurrentSong        = errors.New("no current song")
	ErrInvalidIndex         = errors.New("invalid index")
	ErrQueueEmpty           = errors.New("queue is empty")
	ErrPlaylistLimitReached = errors.New("playlist limit reached")
	ErrRequestNotFound      = errors.New("song request not found")
	ErrMessageNotFound      = errors.New("chat message not found")
)
