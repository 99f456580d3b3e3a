package inmemory

import (
	"slices"

	"github.com/listenroom/server/internal/repository/room"
)

func (r *repo) PromoteCohost(roomId, userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.ErrRoomNotFound
	}

	if !slices.Contains(rs.Participants, userId) {
		return room.ErrParticipantNotFound
	}

	if !slices.Contains(rs.Cohosts, userId) {
		rs.Cohosts = append(rs.Cohosts, userId)
	}

	return nil
}

func (r *repo) DemoteCohost(roomId, userId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.ErrRoomNotFound
	}

	rs.Cohosts = slices.DeleteFunc(rs.Cohosts, func(id string) bool { return id == userId })

	return nil
}

func (r *repo) CanManageSongs(roomId, connId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return false
	}

	return rs.HostId == connId || slices.Contains(rs.Cohosts, connId)
}
