package room

import (
	"context"

	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
)

type AddSongParams struct {
	SenderId string
	RoomId   string
	Song     Song
}

type AddSongResponse struct {
	AddedSong Song
	Playlist  Playlist
	Conns     []*websocket.Conn
}

func (s service) AddSong(ctx context.Context, params *AddSongParams) (AddSongResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return AddSongResponse{}, err
	}

	song, err := s.completeSong(ctx, params.Song)
	if err != nil {
		return AddSongResponse{}, err
	}

	if _, err := s.roomRepo.AddSong(&roomRepo.AddSongParams{
		RoomId: params.RoomId,
		Song:   songToRepo(song),
	}); err != nil {
		s.logger.InfoContext(ctx, "failed to add song", "error", err)
		return AddSongResponse{}, err
	}

	return AddSongResponse{
		AddedSong: song,
		Playlist:  s.getPlaylist(params.RoomId),
		Conns:     s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}

type RemoveSongParams struct {
	SenderId string
	RoomId   string
	SongId   string
}

type RemoveSongResponse struct {
	Removed        Song
	RemovedCurrent bool
	Playlist       Playlist
	Conns          []*websocket.Conn
}

func (s service) RemoveSong(ctx context.Context, params *RemoveSongParams) (RemoveSongResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return RemoveSongResponse{}, err
	}

	result, err := s.roomRepo.RemoveSong(params.RoomId, params.SongId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to remove song", "error", err)
		return RemoveSongResponse{}, err
	}

	return RemoveSongResponse{
		Removed:        songFromRepo(result.Removed),
		RemovedCurrent: result.RemovedCurrent,
		Playlist:       s.getPlaylist(params.RoomId),
		Conns:          s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}

type MoveSongParams struct {
	SenderId  string
	RoomId    string
	FromIndex int
	ToIndex   int
}

type MoveSongResponse struct {
	Playlist Playlist
	Conns    []*websocket.Conn
}

func (s service) MoveSong(ctx context.Context, params *MoveSongParams) (MoveSongResponse, error) {
	if err := s.checkCanManageSongs(params.SenderId, params.RoomId); err != nil {
		return MoveSongResponse{}, err
	}

	if _, err := s.roomRepo.MoveSong(&roomRepo.MoveSongParams{
		RoomId:    params.RoomId,
		FromIndex: params.FromIndex,
		ToIndex:   params.ToIndex,
	}); err != nil {
		s.logger.InfoContext(ctx, "failed to move song", "error", err)
		return MoveSongResponse{}, err
	}

	return MoveSongResponse{
		Playlist: s.getPlaylist(params.RoomId),
		Conns:    s.getConnsByRoomId(ctx, params.RoomId),
	}, nil
}

// completeSong validates the caller-provided song and fills in missing
// metadata from the video lookup collaborator. The lookup happens before
// any state is touched; a failed lookup falls back to the given fields.
func (s service) completeSong(ctx context.Context, song Song) (Song, error) {
	if trimmedLen(song.Id) == 0 || len(song.Id) > songIdMaxLen {
		return Song{}, ErrInvalidInput
	}

	if song.Url == "" {
		song.Url = "https://www.youtube.com/watch?v=" + song.Id
	}

	if song.Title != "" && song.Author != "" {
		return song, nil
	}

	videoData, err := s.videoData.Get(song.Id)
	if err != nil {
		s.logger.DebugContext(ctx, "video data lookup failed", "video_id", song.Id, "error", err)
		return song, nil
	}

	if song.Title == "" {
		song.Title = videoData.Title
	}
	if song.Author == "" {
		song.Author = videoData.AuthorName
	}
	if song.Thumbnail == "" {
		song.Thumbnail = videoData.ThumbnailUrl
	}

	return song, nil
}
