package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
	"github.com/listenroom/server/pkg/validator"
	"github.com/listenroom/server/pkg/wsrouter"
)

type iRoomService interface {
	CreateRoom(context.Context, *room.CreateRoomParams) (room.CreateRoomResponse, error)
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	RejoinRoom(context.Context, *room.RejoinRoomParams) (room.JoinRoomResponse, error)
	LeaveRoom(context.Context, *room.LeaveRoomParams) (room.LeaveRoomResponse, error)
	DisconnectUser(context.Context, *room.DisconnectUserParams) (room.DisconnectUserResponse, error)
	GetRoomState(context.Context, string) (room.RoomState, error)
	GetRooms(context.Context) []room.RoomSummary
	GetRoomStats(context.Context, string) (room.Stats, error)
	PromoteCohost(context.Context, *room.PromoteCohostParams) (room.CohostResponse, error)
	DemoteCohost(context.Context, *room.DemoteCohostParams) (room.CohostResponse, error)
	AddSong(context.Context, *room.AddSongParams) (room.AddSongResponse, error)
	RemoveSong(context.Context, *room.RemoveSongParams) (room.RemoveSongResponse, error)
	MoveSong(context.Context, *room.MoveSongParams) (room.MoveSongResponse, error)
	Play(context.Context, *room.PlayerParams) (room.PlayerResponse, error)
	Skip(context.Context, *room.PlayerParams) (room.PlayerResponse, error)
	AutoAdvance(context.Context, *room.PlayerParams) (room.PlayerResponse, error)
	Previous(context.Context, *room.PlayerParams) (room.PlayerResponse, error)
	Pause(context.Context, *room.PlayerParams) (room.PlayerResponse, error)
	Resume(context.Context, *room.PlayerParams) (room.PlayerResponse, error)
	PlaySpecific(context.Context, *room.PlaySpecificParams) (room.PlayerResponse, error)
	SendMessage(context.Context, *room.SendMessageParams) (room.SendMessageResponse, error)
	React(context.Context, *room.ReactParams) (room.ReactResponse, error)
	SubmitSongRequest(context.Context, *room.SubmitSongRequestParams) (room.SubmitSongRequestResponse, error)
	ApproveSongRequest(context.Context, *room.ResolveSongRequestParams) (room.ApproveSongRequestResponse, error)
	RejectSongRequest(context.Context, *room.ResolveSongRequestParams) (room.RejectSongRequestResponse, error)
	StartBroadcast(context.Context, *room.BroadcastParams) (room.BroadcastResponse, error)
	StopBroadcast(context.Context, *room.BroadcastParams) (room.BroadcastResponse, error)
	RelayAudio(context.Context, *room.RelayAudioParams) (room.RelayAudioResponse, error)
	UpdateStats(context.Context, *room.UpdateStatsParams) (room.UpdateStatsResponse, error)
}

type iConnRepo interface {
	Add(conn *websocket.Conn, connId string) error
	RemoveByConn(conn *websocket.Conn) (string, error)
}

type controller struct {
	roomService iRoomService
	connRepo    iConnRepo
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger
}

func NewController(roomService iRoomService, connRepo iConnRepo, logger *slog.Logger) *controller {
	c := controller{
		roomService: roomService,
		connRepo:    connRepo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
	c.wsmux = c.getWSRouter()

	return &c
}

func (c controller) generateTimeBasedId() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
