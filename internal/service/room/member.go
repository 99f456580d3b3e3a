package room

import (
	"context"

	"github.com/gorilla/websocket"
)

type PromoteCohostParams struct {
	SenderId string
	RoomId   string
	UserId   string
}

type CohostResponse struct {
	UserId       string
	Username     string
	Participants []Participant
	Conns        []*websocket.Conn
}

func (s service) PromoteCohost(ctx context.Context, params *PromoteCohostParams) (CohostResponse, error) {
	if err := s.checkHost(params.SenderId, params.RoomId); err != nil {
		return CohostResponse{}, err
	}

	if err := s.roomRepo.PromoteCohost(params.RoomId, params.UserId); err != nil {
		s.logger.InfoContext(ctx, "failed to promote cohost", "error", err)
		return CohostResponse{}, err
	}

	return s.cohostResponse(ctx, params.RoomId, params.UserId)
}

type DemoteCohostParams struct {
	SenderId string
	RoomId   string
	UserId   string
}

func (s service) DemoteCohost(ctx context.Context, params *DemoteCohostParams) (CohostResponse, error) {
	if err := s.checkHost(params.SenderId, params.RoomId); err != nil {
		return CohostResponse{}, err
	}

	if err := s.roomRepo.DemoteCohost(params.RoomId, params.UserId); err != nil {
		s.logger.InfoContext(ctx, "failed to demote cohost", "error", err)
		return CohostResponse{}, err
	}

	return s.cohostResponse(ctx, params.RoomId, params.UserId)
}

func (s service) cohostResponse(ctx context.Context, roomId, userId string) (CohostResponse, error) {
	rm, err := s.roomRepo.GetRoom(roomId)
	if err != nil {
		return CohostResponse{}, err
	}

	username := ""
	if sess, err := s.sessionRepo.GetSession(userId); err == nil {
		username = sess.Username
	}

	return CohostResponse{
		UserId:       userId,
		Username:     username,
		Participants: s.getParticipants(&rm),
		Conns:        s.getConnsByRoomId(ctx, roomId),
	}, nil
}
