package room

import (
	"context"

	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
)

type PlayerParams struct {
	SenderId string
	RoomId   string
}

type PlayerResponse struct {
	Playlist Playlist
	Conns    []*websocket.Conn
}

// Play starts playback of the current song, or the first queue entry when
// nothing is selected yet.
func (s service) Play(ctx context.Context, params *PlayerParams) (PlayerResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	if s.roomRepo.GetCurrentSongIndex(params.RoomId) == -1 {
		if len(s.roomRepo.GetQueue(params.RoomId)) == 0 {
			return PlayerResponse{}, roomRepo.ErrQueueEmpty
		}

		if _, err := s.roomRepo.SetCurrentSongByIndex(params.RoomId, 0); err != nil {
			s.logger.InfoContext(ctx, "failed to set current song", "error", err)
			return PlayerResponse{}, err
		}
	}

	if err := s.roomRepo.SetPlaybackState(params.RoomId, true, 0); err != nil {
		return PlayerResponse{}, err
	}

	return s.playerResponse(ctx, params.RoomId), nil
}

// Skip advances to the next song. Running past the end of the queue is not
// an error: playback simply stops.
func (s service) Skip(ctx context.Context, params *PlayerParams) (PlayerResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	return s.advance(ctx, params.RoomId)
}

// AutoAdvance is the client-driven end-of-track variant of Skip, restricted
// to the host so only one participant drives the queue forward.
func (s service) AutoAdvance(ctx context.Context, params *PlayerParams) (PlayerResponse, error) {
	if err := s.checkHost(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	return s.advance(ctx, params.RoomId)
}

func (s service) advance(ctx context.Context, roomId string) (PlayerResponse, error) {
	song, err := s.roomRepo.AdvanceSong(roomId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to advance song", "error", err)
		return PlayerResponse{}, err
	}

	if song != nil {
		if err := s.roomRepo.SetPlaybackState(roomId, true, 0); err != nil {
			return PlayerResponse{}, err
		}
	}

	return s.playerResponse(ctx, roomId), nil
}

func (s service) Previous(ctx context.Context, params *PlayerParams) (PlayerResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	if _, err := s.roomRepo.RewindSong(params.RoomId); err != nil {
		s.logger.InfoContext(ctx, "failed to rewind song", "error", err)
		return PlayerResponse{}, err
	}

	if err := s.roomRepo.SetPlaybackState(params.RoomId, true, 0); err != nil {
		return PlayerResponse{}, err
	}

	return s.playerResponse(ctx, params.RoomId), nil
}

func (s service) Pause(ctx context.Context, params *PlayerParams) (PlayerResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	if _, err := s.roomRepo.PausePlayback(params.RoomId); err != nil {
		s.logger.InfoContext(ctx, "failed to pause playback", "error", err)
		return PlayerResponse{}, err
	}

	return s.playerResponse(ctx, params.RoomId), nil
}

func (s service) Resume(ctx context.Context, params *PlayerParams) (PlayerResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	if _, err := s.roomRepo.ResumePlayback(params.RoomId); err != nil {
		s.logger.InfoContext(ctx, "failed to resume playback", "error", err)
		return PlayerResponse{}, err
	}

	return s.playerResponse(ctx, params.RoomId), nil
}

type PlaySpecificParams struct {
	SenderId string
	RoomId   string
	SongId   string
}

func (s service) PlaySpecific(ctx context.Context, params *PlaySpecificParams) (PlayerResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return PlayerResponse{}, err
	}

	if _, err := s.roomRepo.SetCurrentSongById(params.RoomId, params.SongId); err != nil {
		s.logger.InfoContext(ctx, "failed to set current song", "error", err)
		return PlayerResponse{}, err
	}

	if err := s.roomRepo.SetPlaybackState(params.RoomId, true, 0); err != nil {
		return PlayerResponse{}, err
	}

	return s.playerResponse(ctx, params.RoomId), nil
}

func (s service) playerResponse(ctx context.Context, roomId string) PlayerResponse {
	return PlayerResponse{
		Playlist: s.getPlaylist(roomId),
		Conns:    s.getConnsByRoomId(ctx, roomId),
	}
}
