package room

import (
	"context"

	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
)

type BroadcastParams struct {
	SenderId string
	RoomId   string
}

type BroadcastResponse struct {
	Conns []*websocket.Conn
}

func (s service) StartBroadcast(ctx context.Context, params *BroadcastParams) (BroadcastResponse, error) {
	if err := s.checkHost(params.SenderId, params.RoomId); err != nil {
		return BroadcastResponse{}, err
	}

	s.roomRepo.SetRoomLive(params.RoomId, true)
	s.logger.InfoContext(ctx, "broadcast started", "room_id", params.RoomId)

	return BroadcastResponse{Conns: s.getConnsByRoomId(ctx, params.RoomId)}, nil
}

func (s service) StopBroadcast(ctx context.Context, params *BroadcastParams) (BroadcastResponse, error) {
	if err := s.checkHost(params.SenderId, params.RoomId); err != nil {
		return BroadcastResponse{}, err
	}

	s.roomRepo.SetRoomLive(params.RoomId, false)
	s.logger.InfoContext(ctx, "broadcast stopped", "room_id", params.RoomId)

	return BroadcastResponse{Conns: s.getConnsByRoomId(ctx, params.RoomId)}, nil
}

type RelayAudioParams struct {
	SenderId string
}

type RelayAudioResponse struct {
	RoomId string
	Conns  []*websocket.Conn
}

// RelayAudio returns the audience for an audio chunk: everyone in the
// sender's room except the sending host. The chunk itself never touches
// room state, so the room is derived from the sender's session.
func (s service) RelayAudio(ctx context.Context, params *RelayAudioParams) (RelayAudioResponse, error) {
	sess, err := s.sessionRepo.GetSession(params.SenderId)
	if err != nil {
		return RelayAudioResponse{}, ErrNotInRoom
	}

	if err := s.checkHost(params.SenderId, sess.RoomId); err != nil {
		return RelayAudioResponse{}, err
	}

	rm, err := s.roomRepo.GetRoom(sess.RoomId)
	if err != nil {
		return RelayAudioResponse{}, err
	}
	if !rm.IsLive {
		return RelayAudioResponse{}, ErrPermissionDenied
	}

	return RelayAudioResponse{
		RoomId: sess.RoomId,
		Conns:  s.getConnsExcept(ctx, sess.RoomId, params.SenderId),
	}, nil
}

type UpdateStatsParams struct {
	SenderId string
	RoomId   string
	Stats    Stats
}

type UpdateStatsResponse struct {
	Stats Stats
	Conns []*websocket.Conn
}

func (s service) UpdateStats(ctx context.Context, params *UpdateStatsParams) (UpdateStatsResponse, error) {
	if err := s.checkHost(params.SenderId, params.RoomId); err != nil {
		return UpdateStatsResponse{}, err
	}

	s.roomRepo.UpdateRoomStats(params.RoomId, roomRepo.Stats{
		Bitrate:     params.Stats.Bitrate,
		Latency:     params.Stats.Latency,
		BufferLevel: params.Stats.BufferLevel,
		Quality:     params.Stats.Quality,
	})

	return UpdateStatsResponse{
		Stats: params.Stats,
		Conns: s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}
