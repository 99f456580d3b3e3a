package inmemory

import (
	"slices"

	"github.com/listenroom/server/internal/repository/room"
)

func (r *repo) AddSong(params *room.AddSongParams) ([]room.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[params.RoomId]
	if !exists {
		return nil, room.ErrRoomNotFound
	}

	if len(rs.Queue) >= r.cfg.PlaylistLimit {
		return nil, room.ErrPlaylistLimitReached
	}

	rs.Queue = append(rs.Queue, params.Song)

	return append([]room.Song(nil), rs.Queue...), nil
}

func (r *repo) RemoveSong(roomId, songId string) (room.RemoveSongResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.RemoveSongResult{}, room.ErrRoomNotFound
	}

	// duplicates are allowed in the queue; removal targets the first match
	idx := slices.IndexFunc(rs.Queue, func(s room.Song) bool { return s.Id == songId })
	if idx == -1 {
		return room.RemoveSongResult{}, room.ErrSongNotFound
	}

	result := room.RemoveSongResult{Removed: rs.Queue[idx]}
	rs.Queue = slices.Delete(rs.Queue, idx, idx+1)

	switch {
	case idx == rs.CurrentSongIndex:
		rs.CurrentSongIndex = -1
		rs.Playback = room.Playback{}
		result.RemovedCurrent = true
	case rs.CurrentSongIndex > idx:
		rs.CurrentSongIndex--
	}

	result.Queue = append([]room.Song(nil), rs.Queue...)

	return result, nil
}

func (r *repo) MoveSong(params *room.MoveSongParams) ([]room.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[params.RoomId]
	if !exists {
		return nil, room.ErrRoomNotFound
	}

	from, to := params.FromIndex, params.ToIndex
	if from < 0 || from >= len(rs.Queue) || to < 0 || to >= len(rs.Queue) || from == to {
		return nil, room.ErrInvalidIndex
	}

	song := rs.Queue[from]
	rs.Queue = slices.Delete(rs.Queue, from, from+1)
	rs.Queue = slices.Insert(rs.Queue, to, song)

	// keep the index pointing at the same song
	switch cur := rs.CurrentSongIndex; {
	case cur == from:
		rs.CurrentSongIndex = to
	case from < cur && to >= cur:
		rs.CurrentSongIndex--
	case from > cur && to <= cur && cur != -1:
		rs.CurrentSongIndex++
	}

	return append([]room.Song(nil), rs.Queue...), nil
}

func (r *repo) GetQueue(roomId string) []room.Song {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return []room.Song{}
	}

	return append([]room.Song(nil), rs.Queue...)
}

func (r *repo) GetCurrentSong(roomId string) (*room.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return nil, room.ErrRoomNotFound
	}

	if rs.CurrentSongIndex == -1 {
		return nil, nil
	}

	song := rs.Queue[rs.CurrentSongIndex]

	return &song, nil
}

func (r *repo) GetCurrentSongIndex(roomId string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return -1
	}

	return rs.CurrentSongIndex
}

func (r *repo) SetCurrentSongByIndex(roomId string, index int) (room.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.Song{}, room.ErrRoomNotFound
	}

	if index < 0 || index >= len(rs.Queue) {
		return room.Song{}, room.ErrInvalidIndex
	}

	rs.CurrentSongIndex = index
	rs.queueDone = false

	return rs.Queue[index], nil
}

func (r *repo) SetCurrentSongById(roomId, songId string) (room.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.Song{}, room.ErrRoomNotFound
	}

	idx := slices.IndexFunc(rs.Queue, func(s room.Song) bool { return s.Id == songId })
	if idx == -1 {
		return room.Song{}, room.ErrSongNotFound
	}

	rs.CurrentSongIndex = idx
	rs.queueDone = false

	return rs.Queue[idx], nil
}

// AdvanceSong moves to the next queue entry. Running past the end stops
// playback and returns a nil song; calling again on an exhausted queue keeps
// returning nil without error.
func (r *repo) AdvanceSong(roomId string) (*room.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return nil, room.ErrRoomNotFound
	}

	if len(rs.Queue) == 0 {
		return nil, room.ErrQueueEmpty
	}

	if rs.queueDone {
		return nil, nil
	}

	next := rs.CurrentSongIndex + 1
	if next >= len(rs.Queue) {
		rs.CurrentSongIndex = -1
		rs.Playback = room.Playback{}
		rs.queueDone = true
		return nil, nil
	}

	rs.CurrentSongIndex = next
	song := rs.Queue[next]

	return &song, nil
}

// RewindSong moves to the previous queue entry, clamped at the first one.
func (r *repo) RewindSong(roomId string) (*room.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return nil, room.ErrRoomNotFound
	}

	if len(rs.Queue) == 0 {
		return nil, room.ErrQueueEmpty
	}

	prev := rs.CurrentSongIndex - 1
	if prev < 0 {
		prev = 0
	}

	rs.CurrentSongIndex = prev
	rs.queueDone = false
	song := rs.Queue[prev]

	return &song, nil
}
