package room

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
	"github.com/listenroom/server/internal/repository/session"
	tokenRepo "github.com/listenroom/server/internal/repository/token/redis"
	"github.com/listenroom/server/pkg/randstr"
	"github.com/listenroom/server/pkg/ytvideodata"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotInRoom        = errors.New("not in a room")
)

const (
	roomNameMaxLen = 64
	usernameMaxLen = 32
	songIdMaxLen   = 64
	nameSuffixLen  = 4
)

type iRoomRepo interface {
	CreateRoom(*roomRepo.CreateRoomParams) roomRepo.Room
	GetRoom(string) (roomRepo.Room, error)
	GetAllRooms() []roomRepo.Room
	AddParticipant(*roomRepo.AddParticipantParams) (roomRepo.Room, error)
	RemoveParticipant(*roomRepo.RemoveParticipantParams) (roomRepo.RemoveParticipantResult, error)
	IsHost(roomId, connId string) bool
	SetRoomLive(roomId string, isLive bool)
	UpdateRoomStats(roomId string, stats roomRepo.Stats)
	GetRoomStats(roomId string) (roomRepo.Stats, error)
	PromoteCohost(roomId, userId string) error
	DemoteCohost(roomId, userId string) error
	CanManageSongs(roomId, connId string) bool
	AddSong(*roomRepo.AddSongParams) ([]roomRepo.Song, error)
	RemoveSong(roomId, songId string) (roomRepo.RemoveSongResult, error)
	MoveSong(*roomRepo.MoveSongParams) ([]roomRepo.Song, error)
	GetQueue(roomId string) []roomRepo.Song
	GetCurrentSong(roomId string) (*roomRepo.Song, error)
	GetCurrentSongIndex(roomId string) int
	SetCurrentSongByIndex(roomId string, index int) (roomRepo.Song, error)
	SetCurrentSongById(roomId, songId string) (roomRepo.Song, error)
	AdvanceSong(roomId string) (*roomRepo.Song, error)
	RewindSong(roomId string) (*roomRepo.Song, error)
	SetPlaybackState(roomId string, playing bool, startedAt int64) error
	PausePlayback(roomId string) (int64, error)
	ResumePlayback(roomId string) (int64, error)
	GetPlaybackState(roomId string) (roomRepo.PlaybackState, error)
	AddSongRequest(*roomRepo.AddSongRequestParams) (roomRepo.SongRequest, []roomRepo.SongRequest, error)
	ApproveSongRequest(roomId, requestId string) (roomRepo.ApproveSongRequestResult, error)
	RejectSongRequest(roomId, requestId string) (roomRepo.SongRequest, []roomRepo.SongRequest, error)
	AppendChatMessage(roomId, messageId string) error
	HasChatMessage(roomId, messageId string) bool
}

type iSessionRepo interface {
	CreateSession(connId string, s session.Session)
	GetSession(connId string) (session.Session, error)
	DestroySession(connId string)
	SetIsHost(connId string, isHost bool)
}

type iConnRepo interface {
	GetConn(connId string) (*websocket.Conn, error)
}

type iTokenRepo interface {
	SetRejoinToken(ctx context.Context, token string, state *tokenRepo.RejoinState) error
	PopRejoinToken(ctx context.Context, token string) (tokenRepo.RejoinState, error)
}

type iVideoData interface {
	Get(videoId string) (*ytvideodata.VideoData, error)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	MessageMaxLen int
}

type service struct {
	roomRepo    iRoomRepo
	sessionRepo iSessionRepo
	connRepo    iConnRepo
	tokenRepo   iTokenRepo
	videoData   iVideoData
	generator   iGenerator
	logger      *slog.Logger
	cfg         Config
}

func NewService(
	roomRepo iRoomRepo,
	sessionRepo iSessionRepo,
	connRepo iConnRepo,
	tokenRepo iTokenRepo,
	videoData iVideoData,
	cfg *Config,
	logger *slog.Logger,
) *service {
	s := service{
		roomRepo:    roomRepo,
		sessionRepo: sessionRepo,
		connRepo:    connRepo,
		tokenRepo:   tokenRepo,
		videoData:   videoData,
		logger:      logger,
		cfg:         *cfg,
	}

	if s.cfg.MessageMaxLen <= 0 {
		s.cfg.MessageMaxLen = 500
	}

	letterBytes := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	s.generator = randstr.New(letterBytes)

	return &s
}
