package inmemory

import (
	"github.com/listenroom/server/internal/repository/room"
)

func (r *repo) SetPlaybackState(roomId string, playing bool, startedAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.ErrRoomNotFound
	}

	if playing && startedAt == 0 {
		startedAt = r.now()
	}

	rs.Playback = room.Playback{Playing: playing, StartedAt: startedAt}

	return nil
}

// PausePlayback freezes the elapsed offset and returns it in milliseconds.
// Pausing an already-paused room returns the previously frozen offset.
func (r *repo) PausePlayback(roomId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return 0, room.ErrRoomNotFound
	}

	if !rs.Playback.Playing {
		return rs.Playback.StartedAt, nil
	}

	elapsed := r.now() - rs.Playback.StartedAt
	if elapsed < 0 {
		elapsed = 0
	}

	rs.Playback = room.Playback{Playing: false, StartedAt: elapsed}

	return elapsed, nil
}

// ResumePlayback recomputes StartedAt so the elapsed offset at the instant
// of resume equals the offset frozen at pause.
func (r *repo) ResumePlayback(roomId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return 0, room.ErrRoomNotFound
	}

	if rs.CurrentSongIndex == -1 {
		return 0, room.ErrNoCurrentSong
	}

	if rs.Playback.Playing {
		return rs.Playback.StartedAt, nil
	}

	startedAt := r.now() - rs.Playback.StartedAt
	rs.Playback = room.Playback{Playing: true, StartedAt: startedAt}

	return startedAt, nil
}

func (r *repo) GetPlaybackState(roomId string) (room.PlaybackState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, exists := r.rooms[roomId]
	if !exists {
		return room.PlaybackState{}, room.ErrRoomNotFound
	}

	return r.playbackState(rs), nil
}

func (r *repo) playbackState(rs *roomState) room.PlaybackState {
	if rs.Playback.Playing {
		return room.PlaybackState{Playing: true, PlayingFrom: rs.Playback.StartedAt}
	}

	playingFrom := r.now() - rs.Playback.StartedAt
	if playingFrom < 0 {
		playingFrom = 0
	}

	return room.PlaybackState{Playing: false, PlayingFrom: playingFrom}
}
