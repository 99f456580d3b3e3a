package inmemory

import (
	"slices"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"github.com/listenroom/server/internal/repository/room"
)

func (r *repo) CreateRoom(params *room.CreateRoomParams) room.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := roomState{
		Room: room.Room{
			RoomId:           uuid.NewString(),
			RoomName:         params.RoomName,
			HostName:         params.HostName,
			HostId:           params.HostId,
			Participants:     []string{params.HostId},
			Cohosts:          []string{},
			Queue:            []room.Song{},
			CurrentSongIndex: -1,
			SongRequests:     []room.SongRequest{},
			CreatedAt:        r.now(),
		},
	}
	r.rooms[rs.RoomId] = &rs

	return snapshot(&rs)
}

func (r *repo) GetRoom(roomId string) (room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.Room{}, room.ErrRoomNotFound
	}

	return snapshot(rs), nil
}

func (r *repo) GetAllRooms() []room.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]room.Room, 0, len(r.rooms))
	for _, rs := range maps.Values(r.rooms) {
		rooms = append(rooms, snapshot(rs))
	}

	return rooms
}

func (r *repo) AddParticipant(params *room.AddParticipantParams) (room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[params.RoomId]
	if !exists {
		return room.Room{}, room.ErrRoomNotFound
	}

	// rejoining an already-present connection must not duplicate the entry
	if !slices.Contains(rs.Participants, params.ConnId) {
		if len(rs.Participants) >= r.cfg.MembersLimit {
			return room.Room{}, room.ErrRoomFull
		}

		rs.Participants = append(rs.Participants, params.ConnId)
	}

	return snapshot(rs), nil
}

func (r *repo) RemoveParticipant(params *room.RemoveParticipantParams) (room.RemoveParticipantResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[params.RoomId]
	if !exists {
		return room.RemoveParticipantResult{}, room.ErrRoomNotFound
	}

	rs.Participants = slices.DeleteFunc(rs.Participants, func(id string) bool { return id == params.ConnId })
	rs.Cohosts = slices.DeleteFunc(rs.Cohosts, func(id string) bool { return id == params.ConnId })

	result := room.RemoveParticipantResult{RoomId: params.RoomId}

	if rs.HostId == params.ConnId {
		if !params.Promote || len(rs.Participants) == 0 {
			delete(r.rooms, params.RoomId)
			result.Closed = true
			return result, nil
		}

		// host succession: the longest-tenured participant takes over
		newHostId := rs.Participants[0]
		rs.HostId = newHostId
		rs.Cohosts = slices.DeleteFunc(rs.Cohosts, func(id string) bool { return id == newHostId })
		result.HostChanged = true
		result.NewHostId = newHostId
	}

	return result, nil
}

func (r *repo) IsHost(roomId, connId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]

	return exists && rs.HostId == connId
}

func (r *repo) SetRoomLive(roomId string, isLive bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rs, exists := r.rooms[roomId]; exists {
		rs.IsLive = isLive
	}
}

func (r *repo) UpdateRoomStats(roomId string, stats room.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rs, exists := r.rooms[roomId]; exists {
		rs.Stats = stats
	}
}

func (r *repo) GetRoomStats(roomId string) (room.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.Stats{}, room.ErrRoomNotFound
	}

	return rs.Stats, nil
}
