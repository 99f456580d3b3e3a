package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
	"github.com/listenroom/server/internal/repository/session"
	tokenRepo "github.com/listenroom/server/internal/repository/token/redis"
)

type CreateRoomParams struct {
	ConnId   string
	RoomName string
	HostName string
}

type CreateRoomResponse struct {
	Room        RoomState
	RejoinToken string
}

func (s service) CreateRoom(ctx context.Context, params *CreateRoomParams) (CreateRoomResponse, error) {
	if trimmedLen(params.RoomName) == 0 || trimmedLen(params.RoomName) > roomNameMaxLen {
		return CreateRoomResponse{}, ErrInvalidInput
	}
	if trimmedLen(params.HostName) == 0 || trimmedLen(params.HostName) > usernameMaxLen {
		return CreateRoomResponse{}, ErrInvalidInput
	}

	rm := s.roomRepo.CreateRoom(&roomRepo.CreateRoomParams{
		RoomName: params.RoomName,
		HostName: params.HostName,
		HostId:   params.ConnId,
	})

	s.sessionRepo.CreateSession(params.ConnId, session.Session{
		RoomId:   rm.RoomId,
		Username: params.HostName,
		IsHost:   true,
	})

	s.logger.InfoContext(ctx, "room created", "room_id", rm.RoomId, "host_id", params.ConnId)

	return CreateRoomResponse{
		Room:        s.getRoomState(&rm),
		RejoinToken: s.issueRejoinToken(ctx, rm.RoomId, params.HostName, true),
	}, nil
}

type JoinRoomParams struct {
	ConnId   string
	RoomId   string
	Username string
}

type JoinRoomResponse struct {
	Room        RoomState
	Username    string
	RejoinToken string
	Joined      Participant
	Conns       []*websocket.Conn
}

func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	if trimmedLen(params.Username) == 0 || trimmedLen(params.Username) > usernameMaxLen {
		return JoinRoomResponse{}, ErrInvalidInput
	}

	current, err := s.roomRepo.GetRoom(params.RoomId)
	if err != nil {
		return JoinRoomResponse{}, err
	}

	username := s.resolveUsername(&current, params.Username)

	rm, err := s.roomRepo.AddParticipant(&roomRepo.AddParticipantParams{
		RoomId: params.RoomId,
		ConnId: params.ConnId,
	})
	if err != nil {
		s.logger.InfoContext(ctx, "failed to add participant", "error", err)
		return JoinRoomResponse{}, err
	}

	s.sessionRepo.CreateSession(params.ConnId, session.Session{
		RoomId:   params.RoomId,
		Username: username,
	})

	s.logger.InfoContext(ctx, "user joined room", "room_id", params.RoomId, "conn_id", params.ConnId)

	return JoinRoomResponse{
		Room:        s.getRoomState(&rm),
		Username:    username,
		RejoinToken: s.issueRejoinToken(ctx, params.RoomId, username, false),
		Joined: Participant{
			Id:       params.ConnId,
			Username: username,
		},
		Conns: s.getConnsExcept(ctx, params.RoomId, params.ConnId),
	}, nil
}

type RejoinRoomParams struct {
	ConnId      string
	RoomId      string
	RejoinToken string
}

// RejoinRoom re-attaches a former participant using a single-use token,
// bypassing name resolution and the usual join validation.
func (s service) RejoinRoom(ctx context.Context, params *RejoinRoomParams) (JoinRoomResponse, error) {
	state, err := s.tokenRepo.PopRejoinToken(ctx, params.RejoinToken)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to pop rejoin token", "error", err)
		return JoinRoomResponse{}, err
	}

	if state.RoomId != params.RoomId {
		return JoinRoomResponse{}, ErrInvalidInput
	}

	rm, err := s.roomRepo.AddParticipant(&roomRepo.AddParticipantParams{
		RoomId: params.RoomId,
		ConnId: params.ConnId,
	})
	if err != nil {
		return JoinRoomResponse{}, err
	}

	// a former host rejoins as a guest: succession already ran on disconnect
	s.sessionRepo.CreateSession(params.ConnId, session.Session{
		RoomId:   params.RoomId,
		Username: state.Username,
		IsHost:   rm.HostId == params.ConnId,
	})

	s.logger.InfoContext(ctx, "user rejoined room", "room_id", params.RoomId, "conn_id", params.ConnId)

	return JoinRoomResponse{
		Room:        s.getRoomState(&rm),
		Username:    state.Username,
		RejoinToken: s.issueRejoinToken(ctx, params.RoomId, state.Username, false),
		Joined: Participant{
			Id:       params.ConnId,
			Username: state.Username,
			IsHost:   rm.HostId == params.ConnId,
		},
		Conns: s.getConnsExcept(ctx, params.RoomId, params.ConnId),
	}, nil
}

type LeaveRoomParams struct {
	ConnId string
}

type LeaveRoomResponse struct {
	RoomId   string
	Closed   bool
	Username string
	Conns    []*websocket.Conn
	Room     *RoomState
}

// LeaveRoom handles an explicit leave: a host leaving always closes the room.
func (s service) LeaveRoom(ctx context.Context, params *LeaveRoomParams) (LeaveRoomResponse, error) {
	sess, err := s.sessionRepo.GetSession(params.ConnId)
	if err != nil {
		return LeaveRoomResponse{}, ErrNotInRoom
	}

	// snapshot the audience and membership before the room can be torn down
	conns := s.getConnsExcept(ctx, sess.RoomId, params.ConnId)
	var members []string
	if rm, err := s.roomRepo.GetRoom(sess.RoomId); err == nil {
		members = rm.Participants
	}

	result, err := s.roomRepo.RemoveParticipant(&roomRepo.RemoveParticipantParams{
		RoomId: sess.RoomId,
		ConnId: params.ConnId,
	})
	if err != nil {
		// the room is already gone; reclaim the stale session instead of
		// leaving it pointing at nothing
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.sessionRepo.DestroySession(params.ConnId)
			return LeaveRoomResponse{RoomId: sess.RoomId, Closed: true, Username: sess.Username}, nil
		}

		s.logger.InfoContext(ctx, "failed to remove participant", "error", err)
		return LeaveRoomResponse{}, err
	}

	s.destroySessions(params.ConnId, members, result.Closed)

	resp := LeaveRoomResponse{
		RoomId:   sess.RoomId,
		Closed:   result.Closed,
		Username: sess.Username,
		Conns:    conns,
	}

	if !result.Closed {
		if rm, err := s.roomRepo.GetRoom(sess.RoomId); err == nil {
			state := s.getRoomState(&rm)
			resp.Room = &state
		}
	}

	s.logger.InfoContext(ctx, "user left room", "room_id", sess.RoomId, "conn_id", params.ConnId, "closed", result.Closed)

	return resp, nil
}

type DisconnectUserParams struct {
	ConnId string
}

type DisconnectUserResponse struct {
	RoomId          string
	Closed          bool
	HostChanged     bool
	NewHostId       string
	NewHostUsername string
	Username        string
	Conns           []*websocket.Conn
	Room            *RoomState
}

// DisconnectUser handles the ungraceful path: a disconnecting host is
// succeeded by the longest-tenured remaining participant instead of the
// room closing.
func (s service) DisconnectUser(ctx context.Context, params *DisconnectUserParams) (DisconnectUserResponse, error) {
	sess, err := s.sessionRepo.GetSession(params.ConnId)
	if err != nil {
		return DisconnectUserResponse{}, ErrNotInRoom
	}

	conns := s.getConnsExcept(ctx, sess.RoomId, params.ConnId)
	var members []string
	if rm, err := s.roomRepo.GetRoom(sess.RoomId); err == nil {
		members = rm.Participants
	}

	result, err := s.roomRepo.RemoveParticipant(&roomRepo.RemoveParticipantParams{
		RoomId:  sess.RoomId,
		ConnId:  params.ConnId,
		Promote: true,
	})
	if err != nil {
		// the room is already gone; reclaim the stale session instead of
		// leaving it pointing at nothing
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.sessionRepo.DestroySession(params.ConnId)
			return DisconnectUserResponse{RoomId: sess.RoomId, Closed: true, Username: sess.Username}, nil
		}

		s.logger.InfoContext(ctx, "failed to remove participant", "error", err)
		return DisconnectUserResponse{}, err
	}

	s.destroySessions(params.ConnId, members, result.Closed)

	resp := DisconnectUserResponse{
		RoomId:      sess.RoomId,
		Closed:      result.Closed,
		HostChanged: result.HostChanged,
		NewHostId:   result.NewHostId,
		Username:    sess.Username,
		Conns:       conns,
	}

	if result.HostChanged {
		s.sessionRepo.SetIsHost(result.NewHostId, true)
		if hostSess, err := s.sessionRepo.GetSession(result.NewHostId); err == nil {
			resp.NewHostUsername = hostSess.Username
		}
	}

	if !result.Closed {
		if rm, err := s.roomRepo.GetRoom(sess.RoomId); err == nil {
			state := s.getRoomState(&rm)
			resp.Room = &state
		}
	}

	s.logger.InfoContext(ctx, "user disconnected",
		"room_id", sess.RoomId,
		"conn_id", params.ConnId,
		"closed", result.Closed,
		"host_changed", result.HostChanged,
	)

	return resp, nil
}

func (s service) GetRoomState(ctx context.Context, roomId string) (RoomState, error) {
	rm, err := s.roomRepo.GetRoom(roomId)
	if err != nil {
		return RoomState{}, err
	}

	return s.getRoomState(&rm), nil
}

func (s service) GetRooms(ctx context.Context) []RoomSummary {
	rooms := s.roomRepo.GetAllRooms()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, rm := range rooms {
		summaries = append(summaries, RoomSummary{
			RoomId:           rm.RoomId,
			RoomName:         rm.RoomName,
			HostName:         rm.HostName,
			ParticipantCount: len(rm.Participants),
			IsLive:           rm.IsLive,
			CreatedAt:        rm.CreatedAt,
		})
	}

	return summaries
}

func (s service) GetRoomStats(ctx context.Context, roomId string) (Stats, error) {
	stats, err := s.roomRepo.GetRoomStats(roomId)
	if err != nil {
		return Stats{}, err
	}

	return statsFromRepo(stats), nil
}

func (s service) issueRejoinToken(ctx context.Context, roomId, username string, wasHost bool) string {
	token := uuid.NewString()
	if err := s.tokenRepo.SetRejoinToken(ctx, token, &tokenRepo.RejoinState{
		RoomId:   roomId,
		Username: username,
		WasHost:  wasHost,
	}); err != nil {
		// rejoin is best-effort; the room works without it
		s.logger.WarnContext(ctx, "failed to store rejoin token", "error", err)
		return ""
	}

	return token
}
