package inmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenroom/server/internal/repository/room"
)

func TestSetPlaybackState(t *testing.T) {
	r := newTestRepo(&Config{})
	rm := createTestRoom(t, r)
	addSongs(t, r, rm.RoomId, "a")

	_, err := r.SetCurrentSongByIndex(rm.RoomId, 0)
	require.NoError(t, err)

	// a zero start instant means "now"
	require.NoError(t, r.SetPlaybackState(rm.RoomId, true, 0))

	state, err := r.GetPlaybackState(rm.RoomId)
	require.NoError(t, err)
	assert.True(t, state.Playing)
	assert.Equal(t, int64(1_000_000), state.PlayingFrom)

	require.NoError(t, r.SetPlaybackState(rm.RoomId, true, 900_000))
	state, err = r.GetPlaybackState(rm.RoomId)
	require.NoError(t, err)
	assert.Equal(t, int64(900_000), state.PlayingFrom)

	assert.ErrorIs(t, r.SetPlaybackState("missing", true, 0), room.ErrRoomNotFound)
}

func TestPauseResumeRoundTrip(t *testing.T) {
	r := newTestRepo(&Config{})
	rm := createTestRoom(t, r)
	addSongs(t, r, rm.RoomId, "a")

	_, err := r.SetCurrentSongByIndex(rm.RoomId, 0)
	require.NoError(t, err)

	clock := int64(1_000_000)
	r.now = func() int64 { return clock }

	require.NoError(t, r.SetPlaybackState(rm.RoomId, true, 0))

	// 30s into the song
	clock += 30_000
	elapsed, err := r.PausePlayback(rm.RoomId)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), elapsed)

	// pausing again keeps the frozen offset
	clock += 5_000
	elapsed, err = r.PausePlayback(rm.RoomId)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), elapsed)

	// a long pause must not advance the position
	clock += 120_000
	startedAt, err := r.ResumePlayback(rm.RoomId)
	require.NoError(t, err)
	assert.Equal(t, clock-30_000, startedAt, "resume places the start instant 30s in the past")

	state, err := r.GetPlaybackState(rm.RoomId)
	require.NoError(t, err)
	assert.True(t, state.Playing)
	assert.Equal(t, startedAt, state.PlayingFrom)

	// position keeps advancing from the restored offset
	clock += 10_000
	elapsed, err = r.PausePlayback(rm.RoomId)
	require.NoError(t, err)
	assert.Equal(t, int64(40_000), elapsed)
}

func TestResumeWithoutCurrentSong(t *testing.T) {
	r := newTestRepo(&Config{})
	rm := createTestRoom(t, r)
	addSongs(t, r, rm.RoomId, "a")

	_, err := r.ResumePlayback(rm.RoomId)
	assert.ErrorIs(t, err, room.ErrNoCurrentSong)
}

func TestChatMessageLog(t *testing.T) {
	r := newTestRepo(&Config{})
	rm := createTestRoom(t, r)

	require.NoError(t, r.AppendChatMessage(rm.RoomId, "msg-1"))
	assert.True(t, r.HasChatMessage(rm.RoomId, "msg-1"))
	assert.False(t, r.HasChatMessage(rm.RoomId, "msg-2"))

	// the log is bounded; old ids fall off
	for i := 0; i < chatLogLimit; i++ {
		require.NoError(t, r.AppendChatMessage(rm.RoomId, "bulk"))
	}
	assert.False(t, r.HasChatMessage(rm.RoomId, "msg-1"))
}
