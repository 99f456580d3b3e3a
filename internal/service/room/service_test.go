package room

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connInmemory "github.com/listenroom/server/internal/repository/connection/inmemory"
	roomRepo "github.com/listenroom/server/internal/repository/room"
	roomInmemory "github.com/listenroom/server/internal/repository/room/inmemory"
	"github.com/listenroom/server/internal/repository/session"
	sessionInmemory "github.com/listenroom/server/internal/repository/session/inmemory"
	tokenRepo "github.com/listenroom/server/internal/repository/token/redis"
	"github.com/listenroom/server/pkg/ytvideodata"
)

type fakeTokenRepo struct {
	tokens map[string]tokenRepo.RejoinState
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]tokenRepo.RejoinState)}
}

func (f *fakeTokenRepo) SetRejoinToken(_ context.Context, token string, state *tokenRepo.RejoinState) error {
	f.tokens[token] = *state
	return nil
}

func (f *fakeTokenRepo) PopRejoinToken(_ context.Context, token string) (tokenRepo.RejoinState, error) {
	state, exists := f.tokens[token]
	if !exists {
		return tokenRepo.RejoinState{}, tokenRepo.ErrTokenNotFound
	}
	delete(f.tokens, token)

	return state, nil
}

type fakeVideoData struct{}

func (fakeVideoData) Get(videoId string) (*ytvideodata.VideoData, error) {
	return &ytvideodata.VideoData{Title: "t-" + videoId, AuthorName: "a-" + videoId}, nil
}

func newTestService() *service {
	return NewService(
		roomInmemory.NewRepo(&roomInmemory.Config{}),
		sessionInmemory.NewRepo(),
		connInmemory.NewRepo(),
		newFakeTokenRepo(),
		fakeVideoData{},
		&Config{},
		slog.Default(),
	)
}

func createTestRoom(t *testing.T, s *service) string {
	t.Helper()

	resp, err := s.CreateRoom(context.Background(), &CreateRoomParams{
		ConnId:   "conn-host",
		RoomName: "test room",
		HostName: "alice",
	})
	require.NoError(t, err)

	return resp.Room.RoomId
}

func TestCreateRoomValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		params CreateRoomParams
	}{
		{"empty room name", CreateRoomParams{ConnId: "c", RoomName: "  ", HostName: "alice"}},
		{"room name too long", CreateRoomParams{ConnId: "c", RoomName: strings.Repeat("x", 65), HostName: "alice"}},
		{"empty host name", CreateRoomParams{ConnId: "c", RoomName: "room", HostName: ""}},
		{"host name too long", CreateRoomParams{ConnId: "c", RoomName: "room", HostName: strings.Repeat("x", 33)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateRoom(ctx, &tt.params)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestJoinRoomNameCollision(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	joinResp, err := s.JoinRoom(ctx, &JoinRoomParams{ConnId: "conn-2", RoomId: roomId, Username: "alice"})
	require.NoError(t, err)
	assert.NotEqual(t, "alice", joinResp.Username, "colliding names get a suffix")
	assert.True(t, strings.HasPrefix(joinResp.Username, "alice-"))

	joinResp, err = s.JoinRoom(ctx, &JoinRoomParams{ConnId: "conn-3", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", joinResp.Username, "unique names pass through untouched")
}

func TestRoomCloseReclaimsGuestSessions(t *testing.T) {
	sessions := sessionInmemory.NewRepo()
	s := NewService(
		roomInmemory.NewRepo(&roomInmemory.Config{}),
		sessions,
		connInmemory.NewRepo(),
		newFakeTokenRepo(),
		fakeVideoData{},
		&Config{},
		slog.Default(),
	)
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.JoinRoom(ctx, &JoinRoomParams{ConnId: "conn-guest", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)

	leaveResp, err := s.LeaveRoom(ctx, &LeaveRoomParams{ConnId: "conn-host"})
	require.NoError(t, err)
	require.True(t, leaveResp.Closed)

	// closing the room reclaims every member's session, not just the host's
	_, err = sessions.GetSession("conn-host")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = sessions.GetSession("conn-guest")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	_, err = s.DisconnectUser(ctx, &DisconnectUserParams{ConnId: "conn-guest"})
	assert.ErrorIs(t, err, ErrNotInRoom)
}

func TestStaleSessionReclaimedWhenRoomGone(t *testing.T) {
	sessions := sessionInmemory.NewRepo()
	s := NewService(
		roomInmemory.NewRepo(&roomInmemory.Config{}),
		sessions,
		connInmemory.NewRepo(),
		newFakeTokenRepo(),
		fakeVideoData{},
		&Config{},
		slog.Default(),
	)
	ctx := context.Background()

	sessions.CreateSession("conn-stale", session.Session{RoomId: "gone", Username: "bob"})

	discResp, err := s.DisconnectUser(ctx, &DisconnectUserParams{ConnId: "conn-stale"})
	require.NoError(t, err)
	assert.True(t, discResp.Closed)
	assert.Equal(t, "gone", discResp.RoomId)

	_, err = sessions.GetSession("conn-stale")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	sessions.CreateSession("conn-stale", session.Session{RoomId: "gone", Username: "bob"})

	leaveResp, err := s.LeaveRoom(ctx, &LeaveRoomParams{ConnId: "conn-stale"})
	require.NoError(t, err)
	assert.True(t, leaveResp.Closed)

	_, err = sessions.GetSession("conn-stale")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestGuestPermissions(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.JoinRoom(ctx, &JoinRoomParams{ConnId: "conn-guest", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)

	_, err = s.AddSong(ctx, &AddSongParams{SenderId: "conn-host", RoomId: roomId, Song: Song{Id: "a"}})
	require.NoError(t, err)
	_, err = s.AddSong(ctx, &AddSongParams{SenderId: "conn-host", RoomId: roomId, Song: Song{Id: "b"}})
	require.NoError(t, err)
	_, err = s.Play(ctx, &PlayerParams{SenderId: "conn-host", RoomId: roomId})
	require.NoError(t, err)

	guestCalls := map[string]func() error{
		"add song": func() error {
			_, err := s.AddSong(ctx, &AddSongParams{SenderId: "conn-guest", RoomId: roomId, Song: Song{Id: "a"}})
			return err
		},
		"remove song": func() error {
			_, err := s.RemoveSong(ctx, &RemoveSongParams{SenderId: "conn-guest", RoomId: roomId, SongId: "a"})
			return err
		},
		"play": func() error {
			_, err := s.Play(ctx, &PlayerParams{SenderId: "conn-guest", RoomId: roomId})
			return err
		},
		"skip": func() error {
			_, err := s.Skip(ctx, &PlayerParams{SenderId: "conn-guest", RoomId: roomId})
			return err
		},
		"promote cohost": func() error {
			_, err := s.PromoteCohost(ctx, &PromoteCohostParams{SenderId: "conn-guest", RoomId: roomId, UserId: "conn-guest"})
			return err
		},
		"start broadcast": func() error {
			_, err := s.StartBroadcast(ctx, &BroadcastParams{SenderId: "conn-guest", RoomId: roomId})
			return err
		},
		"approve request": func() error {
			_, err := s.ApproveSongRequest(ctx, &ResolveSongRequestParams{SenderId: "conn-guest", RoomId: roomId, RequestId: "r"})
			return err
		},
	}

	before, err := s.GetRoomState(ctx, roomId)
	require.NoError(t, err)

	// a denied call must leave the room exactly as it found it
	for name, call := range guestCalls {
		assert.ErrorIs(t, call(), ErrPermissionDenied, name)

		after, err := s.GetRoomState(ctx, roomId)
		require.NoError(t, err, name)
		assert.Equal(t, before, after, name)
	}
}

func TestCohostCanManageSongsButNotBroadcast(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.JoinRoom(ctx, &JoinRoomParams{ConnId: "conn-2", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)

	_, err = s.PromoteCohost(ctx, &PromoteCohostParams{SenderId: "conn-host", RoomId: roomId, UserId: "conn-2"})
	require.NoError(t, err)

	_, err = s.AddSong(ctx, &AddSongParams{SenderId: "conn-2", RoomId: roomId, Song: Song{Id: "a"}})
	assert.NoError(t, err, "cohosts manage the queue")

	_, err = s.StartBroadcast(ctx, &BroadcastParams{SenderId: "conn-2", RoomId: roomId})
	assert.ErrorIs(t, err, ErrPermissionDenied, "broadcasting stays host-only")

	_, err = s.DemoteCohost(ctx, &DemoteCohostParams{SenderId: "conn-2", RoomId: roomId, UserId: "conn-2"})
	assert.ErrorIs(t, err, ErrPermissionDenied, "cohosts cannot manage roles")
}

func TestSendMessageLengthLimit(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	resp, err := s.SendMessage(ctx, &SendMessageParams{
		SenderId: "conn-host",
		RoomId:   roomId,
		Message:  strings.Repeat("x", 500),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Message.Message, 500)
	assert.Equal(t, "alice", resp.Message.Username)

	_, err = s.SendMessage(ctx, &SendMessageParams{
		SenderId: "conn-host",
		RoomId:   roomId,
		Message:  strings.Repeat("x", 501),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SendMessage(ctx, &SendMessageParams{SenderId: "conn-host", RoomId: roomId, Message: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput, "whitespace-only messages are rejected")

	// the limit applies after trimming
	resp, err = s.SendMessage(ctx, &SendMessageParams{
		SenderId: "conn-host",
		RoomId:   roomId,
		Message:  "  " + strings.Repeat("x", 500) + "  ",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Message.Message, 500)
}

func TestReactValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	msgResp, err := s.SendMessage(ctx, &SendMessageParams{SenderId: "conn-host", RoomId: roomId, Message: "hello"})
	require.NoError(t, err)

	reactResp, err := s.React(ctx, &ReactParams{
		SenderId:  "conn-host",
		RoomId:    roomId,
		MessageId: msgResp.Message.MessageId,
		Emoji:     "🔥",
		Action:    "add",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", reactResp.Reaction.Username)

	_, err = s.React(ctx, &ReactParams{
		SenderId:  "conn-host",
		RoomId:    roomId,
		MessageId: msgResp.Message.MessageId,
		Emoji:     "🔥",
		Action:    "toggle",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.React(ctx, &ReactParams{
		SenderId:  "conn-host",
		RoomId:    roomId,
		MessageId: "missing",
		Emoji:     "🔥",
		Action:    "add",
	})
	assert.ErrorIs(t, err, roomRepo.ErrMessageNotFound)
}

func TestSongRequestFlow(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.JoinRoom(ctx, &JoinRoomParams{ConnId: "conn-guest", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)

	submitResp, err := s.SubmitSongRequest(ctx, &SubmitSongRequestParams{
		SenderId: "conn-guest",
		RoomId:   roomId,
		Song:     Song{Id: "abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t-abc", submitResp.Request.Song.Title, "metadata filled in before queuing")
	assert.Equal(t, "conn-guest", submitResp.Request.RequestedBy)

	approveResp, err := s.ApproveSongRequest(ctx, &ResolveSongRequestParams{
		SenderId:  "conn-host",
		RoomId:    roomId,
		RequestId: submitResp.Request.RequestId,
	})
	require.NoError(t, err)
	assert.Empty(t, approveResp.Requests)
	require.Len(t, approveResp.Playlist.Queue, 1)
	assert.Equal(t, "abc", approveResp.Playlist.Queue[0].Id)
}

func TestRelayAudioRequiresLiveBroadcast(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.RelayAudio(ctx, &RelayAudioParams{SenderId: "conn-host"})
	assert.ErrorIs(t, err, ErrPermissionDenied, "relay before going live")

	_, err = s.StartBroadcast(ctx, &BroadcastParams{SenderId: "conn-host", RoomId: roomId})
	require.NoError(t, err)

	relayResp, err := s.RelayAudio(ctx, &RelayAudioParams{SenderId: "conn-host"})
	require.NoError(t, err)
	assert.Equal(t, roomId, relayResp.RoomId)

	_, err = s.StopBroadcast(ctx, &BroadcastParams{SenderId: "conn-host", RoomId: roomId})
	require.NoError(t, err)

	_, err = s.RelayAudio(ctx, &RelayAudioParams{SenderId: "conn-host"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPlayOnEmptyQueue(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.Play(ctx, &PlayerParams{SenderId: "conn-host", RoomId: roomId})
	assert.ErrorIs(t, err, roomRepo.ErrQueueEmpty)
}

func TestSkipPastEndIsNotAnError(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	roomId := createTestRoom(t, s)

	_, err := s.AddSong(ctx, &AddSongParams{SenderId: "conn-host", RoomId: roomId, Song: Song{Id: "a"}})
	require.NoError(t, err)

	playResp, err := s.Play(ctx, &PlayerParams{SenderId: "conn-host", RoomId: roomId})
	require.NoError(t, err)
	require.NotNil(t, playResp.Playlist.CurrentSong)

	// repeated skips past the end keep succeeding with no current song
	for i := 0; i < 3; i++ {
		skipResp, err := s.Skip(ctx, &PlayerParams{SenderId: "conn-host", RoomId: roomId})
		require.NoError(t, err)
		assert.Nil(t, skipResp.Playlist.CurrentSong)
		assert.False(t, skipResp.Playlist.Playing)
	}
}
