package room

import (
	"context"

	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
)

type SubmitSongRequestParams struct {
	SenderId string
	RoomId   string
	Song     Song
}

type SubmitSongRequestResponse struct {
	Request  SongRequest
	Requests []SongRequest
	Conns    []*websocket.Conn
}

func (s service) SubmitSongRequest(ctx context.Context, params *SubmitSongRequestParams) (SubmitSongRequestResponse, error) {
	if err := s.checkMember(params.SenderId, params.RoomId); err != nil {
		return SubmitSongRequestResponse{}, err
	}

	song, err := s.completeSong(ctx, params.Song)
	if err != nil {
		return SubmitSongRequestResponse{}, err
	}

	request, requests, err := s.roomRepo.AddSongRequest(&roomRepo.AddSongRequestParams{
		RoomId:      params.RoomId,
		Song:        songToRepo(song),
		RequestedBy: params.SenderId,
	})
	if err != nil {
		s.logger.InfoContext(ctx, "failed to add song request", "error", err)
		return SubmitSongRequestResponse{}, err
	}

	return SubmitSongRequestResponse{
		Request:  requestFromRepo(request),
		Requests: requestsFromRepo(requests),
		Conns:    s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}

type ResolveSongRequestParams struct {
	SenderId  string
	RoomId    string
	RequestId string
}

type ApproveSongRequestResponse struct {
	Approved SongRequest
	Requests []SongRequest
	Playlist Playlist
	Conns    []*websocket.Conn
}

func (s service) ApproveSongRequest(ctx context.Context, params *ResolveSongRequestParams) (ApproveSongRequestResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return ApproveSongRequestResponse{}, err
	}

	result, err := s.roomRepo.ApproveSongRequest(params.RoomId, params.RequestId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to approve song request", "error", err)
		return ApproveSongRequestResponse{}, err
	}

	return ApproveSongRequestResponse{
		Approved: requestFromRepo(result.Approved),
		Requests: requestsFromRepo(result.Requests),
		Playlist: s.getPlaylist(params.RoomId),
		Conns:    s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}

type RejectSongRequestResponse struct {
	Rejected SongRequest
	Requests []SongRequest
	Conns    []*websocket.Conn
}

func (s service) RejectSongRequest(ctx context.Context, params *ResolveSongRequestParams) (RejectSongRequestResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return RejectSongRequestResponse{}, err
	}

	rejected, requests, err := s.roomRepo.RejectSongRequest(params.RoomId, params.RequestId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to reject song request", "error", err)
		return RejectSongRequestResponse{}, err
	}

	return RejectSongRequestResponse{
		Rejected: requestFromRepo(rejected),
		Requests: requestsFromRepo(requests),
		Conns:    s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}
