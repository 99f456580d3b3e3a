package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connInmemory "github.com/listenroom/server/internal/repository/connection/inmemory"
	roomInmemory "github.com/listenroom/server/internal/repository/room/inmemory"
	sessionInmemory "github.com/listenroom/server/internal/repository/session/inmemory"
	tokenRedis "github.com/listenroom/server/internal/repository/token/redis"
	"github.com/listenroom/server/internal/service/room"
	"github.com/listenroom/server/pkg/ytvideodata"
)

type stubVideoData struct{}

func (stubVideoData) Get(videoId string) (*ytvideodata.VideoData, error) {
	return &ytvideodata.VideoData{
		Title:        "title-" + videoId,
		AuthorName:   "author-" + videoId,
		ThumbnailUrl: "https://i.ytimg.com/vi/" + videoId + "/hqdefault.jpg",
	}, nil
}

func TestRoomLifecycle(t *testing.T) {
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rc.Close()

	roomRepo := roomInmemory.NewRepo(&roomInmemory.Config{MembersLimit: 100, PlaylistLimit: 500})
	sessionRepo := sessionInmemory.NewRepo()
	connRepo := connInmemory.NewRepo()
	tokenRepo := tokenRedis.NewRepo(rc, time.Minute)
	service := room.NewService(roomRepo, sessionRepo, connRepo, tokenRepo, stubVideoData{}, &room.Config{MessageMaxLen: 500}, slog.Default())

	ctx := context.Background()

	createResp, err := service.CreateRoom(ctx, &room.CreateRoomParams{
		ConnId:   "conn-host",
		RoomName: "late night listening",
		HostName: "alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, createResp.Room.RoomId)
	assert.NotEmpty(t, createResp.RejoinToken)
	assert.Equal(t, "alice", createResp.Room.HostName)
	require.Len(t, createResp.Room.Participants, 1)
	assert.True(t, createResp.Room.Participants[0].IsHost)

	roomId := createResp.Room.RoomId

	joinResp, err := service.JoinRoom(ctx, &room.JoinRoomParams{
		ConnId:   "conn-guest",
		RoomId:   roomId,
		Username: "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", joinResp.Username)
	assert.Len(t, joinResp.Room.Participants, 2)

	addResp, err := service.AddSong(ctx, &room.AddSongParams{
		SenderId: "conn-host",
		RoomId:   roomId,
		Song:     room.Song{Id: "dQw4w9WgXcQ"},
	})
	require.NoError(t, err)
	assert.Equal(t, "title-dQw4w9WgXcQ", addResp.AddedSong.Title)
	assert.Equal(t, "author-dQw4w9WgXcQ", addResp.AddedSong.Author)
	assert.Len(t, addResp.Playlist.Queue, 1)

	// guests cannot touch the queue
	_, err = service.AddSong(ctx, &room.AddSongParams{
		SenderId: "conn-guest",
		RoomId:   roomId,
		Song:     room.Song{Id: "other"},
	})
	assert.ErrorIs(t, err, room.ErrPermissionDenied)

	playResp, err := service.Play(ctx, &room.PlayerParams{SenderId: "conn-host", RoomId: roomId})
	require.NoError(t, err)
	require.NotNil(t, playResp.Playlist.CurrentSong)
	assert.True(t, playResp.Playlist.Playing)
	assert.Equal(t, "dQw4w9WgXcQ", playResp.Playlist.CurrentSong.Id)

	leaveResp, err := service.LeaveRoom(ctx, &room.LeaveRoomParams{ConnId: "conn-guest"})
	require.NoError(t, err)
	assert.False(t, leaveResp.Closed)
	require.NotNil(t, leaveResp.Room)
	assert.Len(t, leaveResp.Room.Participants, 1)

	// the host leaving closes the room
	leaveResp, err = service.LeaveRoom(ctx, &room.LeaveRoomParams{ConnId: "conn-host"})
	require.NoError(t, err)
	assert.True(t, leaveResp.Closed)

	_, err = service.GetRoomState(ctx, roomId)
	assert.Error(t, err)
}

func TestHostSuccessionOnDisconnect(t *testing.T) {
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rc.Close()

	roomRepo := roomInmemory.NewRepo(&roomInmemory.Config{MembersLimit: 100, PlaylistLimit: 500})
	service := room.NewService(roomRepo, sessionInmemory.NewRepo(), connInmemory.NewRepo(),
		tokenRedis.NewRepo(rc, time.Minute), stubVideoData{}, &room.Config{}, slog.Default())

	ctx := context.Background()

	createResp, err := service.CreateRoom(ctx, &room.CreateRoomParams{
		ConnId:   "conn-host",
		RoomName: "roadtrip",
		HostName: "alice",
	})
	require.NoError(t, err)
	roomId := createResp.Room.RoomId

	_, err = service.JoinRoom(ctx, &room.JoinRoomParams{ConnId: "conn-2", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)
	_, err = service.JoinRoom(ctx, &room.JoinRoomParams{ConnId: "conn-3", RoomId: roomId, Username: "carol"})
	require.NoError(t, err)

	disconnectResp, err := service.DisconnectUser(ctx, &room.DisconnectUserParams{ConnId: "conn-host"})
	require.NoError(t, err)
	assert.False(t, disconnectResp.Closed)
	assert.True(t, disconnectResp.HostChanged)
	assert.Equal(t, "conn-2", disconnectResp.NewHostId, "longest-tenured participant becomes host")
	assert.Equal(t, "bob", disconnectResp.NewHostUsername)

	// the new host can manage the queue
	_, err = service.AddSong(ctx, &room.AddSongParams{
		SenderId: "conn-2",
		RoomId:   roomId,
		Song:     room.Song{Id: "abc123"},
	})
	require.NoError(t, err)
}

func TestRejoinWithToken(t *testing.T) {
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rc.Close()

	roomRepo := roomInmemory.NewRepo(&roomInmemory.Config{MembersLimit: 100, PlaylistLimit: 500})
	service := room.NewService(roomRepo, sessionInmemory.NewRepo(), connInmemory.NewRepo(),
		tokenRedis.NewRepo(rc, time.Minute), stubVideoData{}, &room.Config{}, slog.Default())

	ctx := context.Background()

	createResp, err := service.CreateRoom(ctx, &room.CreateRoomParams{
		ConnId:   "conn-host",
		RoomName: "study session",
		HostName: "alice",
	})
	require.NoError(t, err)
	roomId := createResp.Room.RoomId

	joinResp, err := service.JoinRoom(ctx, &room.JoinRoomParams{ConnId: "conn-2", RoomId: roomId, Username: "bob"})
	require.NoError(t, err)
	require.NotEmpty(t, joinResp.RejoinToken)

	_, err = service.DisconnectUser(ctx, &room.DisconnectUserParams{ConnId: "conn-2"})
	require.NoError(t, err)

	rejoinResp, err := service.RejoinRoom(ctx, &room.RejoinRoomParams{
		ConnId:      "conn-2b",
		RoomId:      roomId,
		RejoinToken: joinResp.RejoinToken,
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", rejoinResp.Username, "rejoin keeps the resolved username")

	// tokens are single use
	_, err = service.RejoinRoom(ctx, &room.RejoinRoomParams{
		ConnId:      "conn-2c",
		RoomId:      roomId,
		RejoinToken: joinResp.RejoinToken,
	})
	assert.ErrorIs(t, err, tokenRedis.ErrTokenNotFound)
}
