package inmemory

import (
	"slices"

	"github.com/google/uuid"

	"github.com/listenroom/server/internal/repository/room"
)

func (r *repo) AddSongRequest(params *room.AddSongRequestParams) (room.SongRequest, []room.SongRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[params.RoomId]
	if !exists {
		return room.SongRequest{}, nil, room.ErrRoomNotFound
	}

	request := room.SongRequest{
		RequestId:   uuid.NewString(),
		Song:        params.Song,
		RequestedBy: params.RequestedBy,
		RequestedAt: r.now(),
	}
	rs.SongRequests = append(rs.SongRequests, request)

	return request, append([]room.SongRequest(nil), rs.SongRequests...), nil
}

// ApproveSongRequest moves the request into the queue in one step.
func (r *repo) ApproveSongRequest(roomId, requestId string) (room.ApproveSongRequestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.ApproveSongRequestResult{}, room.ErrRoomNotFound
	}

	idx := slices.IndexFunc(rs.SongRequests, func(sr room.SongRequest) bool { return sr.RequestId == requestId })
	if idx == -1 {
		return room.ApproveSongRequestResult{}, room.ErrRequestNotFound
	}

	if len(rs.Queue) >= r.cfg.PlaylistLimit {
		return room.ApproveSongRequestResult{}, room.ErrPlaylistLimitReached
	}

	approved := rs.SongRequests[idx]
	rs.SongRequests = slices.Delete(rs.SongRequests, idx, idx+1)
	rs.Queue = append(rs.Queue, approved.Song)

	return room.ApproveSongRequestResult{
		Approved: approved,
		Requests: append([]room.SongRequest(nil), rs.SongRequests...),
		Queue:    append([]room.Song(nil), rs.Queue...),
	}, nil
}

func (r *repo) RejectSongRequest(roomId, requestId string) (room.SongRequest, []room.SongRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.SongRequest{}, nil, room.ErrRoomNotFound
	}

	idx := slices.IndexFunc(rs.SongRequests, func(sr room.SongRequest) bool { return sr.RequestId == requestId })
	if idx == -1 {
		return room.SongRequest{}, nil, room.ErrRequestNotFound
	}

	rejected := rs.SongRequests[idx]
	rs.SongRequests = slices.Delete(rs.SongRequests, idx, idx+1)

	return rejected, append([]room.SongRequest(nil), rs.SongRequests...), nil
}
