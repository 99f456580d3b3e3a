package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/service/room"
)

type SongInput struct {
	Id        string `json:"id" validate:"required,max=64"`
	Title     string `json:"title" validate:"max=256"`
	Author    string `json:"author" validate:"max=128"`
	Duration  int    `json:"duration" validate:"gte=0"`
	Thumbnail string `json:"thumbnail" validate:"max=512"`
	Url       string `json:"url" validate:"max=512"`
}

func (input SongInput) toSong() room.Song {
	return room.Song{
		Id:        input.Id,
		Title:     input.Title,
		Author:    input.Author,
		Duration:  input.Duration,
		Thumbnail: input.Thumbnail,
		Url:       input.Url,
	}
}

type AddSongInput struct {
	RoomId string    `json:"room_id" validate:"required,max=64"`
	Song   SongInput `json:"song" validate:"required"`
}

func (c controller) handleAddSong(ctx context.Context, conn *websocket.Conn, input AddSongInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	addSongResp, err := c.roomService.AddSong(ctx, &room.AddSongParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		Song:     input.Song.toSong(),
	})
	if err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	c.broadcastPlaylist(ctx, addSongResp.Conns, addSongResp.Playlist)

	return nil
}

type RemoveSongInput struct {
	RoomId string `json:"room_id" validate:"required,max=64"`
	SongId string `json:"song_id" validate:"required,max=64"`
}

func (c controller) handleRemoveSong(ctx context.Context, conn *websocket.Conn, input RemoveSongInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	removeSongResp, err := c.roomService.RemoveSong(ctx, &room.RemoveSongParams{
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		SongId:   input.SongId,
	})
	if err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	c.broadcastPlaylist(ctx, removeSongResp.Conns, removeSongResp.Playlist)

	return nil
}

type ReorderSongInput struct {
	RoomId    string `json:"room_id" validate:"required,max=64"`
	FromIndex *int   `json:"from_index" validate:"required,gte=0"`
	ToIndex   *int   `json:"to_index" validate:"required,gte=0"`
}

func (c controller) handleReorderSong(ctx context.Context, conn *websocket.Conn, input ReorderSongInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	moveSongResp, err := c.roomService.MoveSong(ctx, &room.MoveSongParams{
		SenderId:  c.getConnIdFromCtx(ctx),
		RoomId:    input.RoomId,
		FromIndex: *input.FromIndex,
		ToIndex:   *input.ToIndex,
	})
	if err != nil {
		return fmt.Errorf("failed to reorder song: %w", err)
	}

	c.broadcastPlaylist(ctx, moveSongResp.Conns, moveSongResp.Playlist)

	return nil
}

func (c controller) broadcastPlaylist(ctx context.Context, conns []*websocket.Conn, playlist room.Playlist) {
	c.broadcast(ctx, conns, &Output{
		Type:    "playlist:update",
		Payload: map[string]any{"playlist": playlist},
	})
}
