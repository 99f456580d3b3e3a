package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, exp time.Duration) (*Repo, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	rc := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, exp), s
}

func TestRejoinTokenRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	state := RejoinState{RoomId: "room-1", Username: "alice", WasHost: true}
	require.NoError(t, repo.SetRejoinToken(ctx, "tok", &state))

	got, err := repo.PopRejoinToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	// single use
	_, err = repo.PopRejoinToken(ctx, "tok")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRejoinTokenExpiry(t *testing.T) {
	repo, s := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.SetRejoinToken(ctx, "tok", &RejoinState{RoomId: "room-1", Username: "alice"}))

	s.FastForward(2 * time.Minute)

	_, err := repo.PopRejoinToken(ctx, "tok")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestPopUnknownToken(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)

	_, err := repo.PopRejoinToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
