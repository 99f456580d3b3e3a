package inmemory

import (
	"slices"

	"github.com/listenroom/server/internal/repository/room"
)

// AppendChatMessage records a message id so later reactions can be checked
// against something that actually happened. Only the newest ids are kept.
func (r *repo) AppendChatMessage(roomId, messageId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.ErrRoomNotFound
	}

	rs.chatMessageIds = append(rs.chatMessageIds, messageId)
	if len(rs.chatMessageIds) > chatLogLimit {
		rs.chatMessageIds = rs.chatMessageIds[len(rs.chatMessageIds)-chatLogLimit:]
	}

	return nil
}

func (r *repo) HasChatMessage(roomId, messageId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return false
	}

	return slices.Contains(rs.chatMessageIds, messageId)
}
