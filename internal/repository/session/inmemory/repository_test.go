package inmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenroom/server/internal/repository/session"
)

func TestSessionLifecycle(t *testing.T) {
	r := NewRepo()

	_, err := r.GetSession("conn-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	r.CreateSession("conn-1", session.Session{RoomId: "room-1", Username: "alice", IsHost: true})

	s, err := r.GetSession("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "room-1", s.RoomId)
	assert.Equal(t, "alice", s.Username)
	assert.True(t, s.IsHost)

	r.SetIsHost("conn-1", false)
	s, err = r.GetSession("conn-1")
	require.NoError(t, err)
	assert.False(t, s.IsHost)

	// setting host on an unknown session is a no-op
	r.SetIsHost("conn-2", true)
	_, err = r.GetSession("conn-2")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	r.DestroySession("conn-1")
	_, err = r.GetSession("conn-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
