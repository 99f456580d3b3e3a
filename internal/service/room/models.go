package room

import (
	roomRepo "github.com/listenroom/server/internal/repository/room"
)

type Song struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Duration  int    `json:"duration,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Url       string `json:"url"`
}

type SongRequest struct {
	RequestId   string `json:"request_id"`
	Song        Song   `json:"song"`
	RequestedBy string `json:"requested_by"`
	RequestedAt int64  `json:"requested_at"`
}

type Participant struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	IsHost   bool   `json:"is_host"`
	IsCohost bool   `json:"is_cohost"`
}

// Playlist is the canonical playback snapshot re-sent after every mutating
// playlist operation and on join/rejoin.
type Playlist struct {
	Queue       []Song `json:"queue"`
	CurrentSong *Song  `json:"current_song"`
	Playing     bool   `json:"playing"`
	PlayingFrom int64  `json:"playing_from"`
}

type Stats struct {
	Bitrate     int     `json:"bitrate"`
	Latency     int     `json:"latency"`
	BufferLevel float64 `json:"buffer_level"`
	Quality     string  `json:"quality"`
}

type RoomSummary struct {
	RoomId           string `json:"room_id"`
	RoomName         string `json:"room_name"`
	HostName         string `json:"host_name"`
	ParticipantCount int    `json:"participant_count"`
	IsLive           bool   `json:"is_live"`
	CreatedAt        int64  `json:"created_at"`
}

type RoomState struct {
	RoomId       string        `json:"room_id"`
	RoomName     string        `json:"room_name"`
	HostName     string        `json:"host_name"`
	HostId       string        `json:"host_id"`
	Participants []Participant `json:"participants"`
	IsLive       bool          `json:"is_live"`
	Playlist     Playlist      `json:"playlist"`
	SongRequests []SongRequest `json:"song_requests"`
	CreatedAt    int64         `json:"created_at"`
}

type ChatMessage struct {
	MessageId string `json:"message_id"`
	SenderId  string `json:"sender_id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type ChatReaction struct {
	MessageId string `json:"message_id"`
	Emoji     string `json:"emoji"`
	Action    string `json:"action"`
	SenderId  string `json:"sender_id"`
	Username  string `json:"username"`
}

func songFromRepo(s roomRepo.Song) Song {
	return Song{
		Id:        s.Id,
		Title:     s.Title,
		Author:    s.Author,
		Duration:  s.Duration,
		Thumbnail: s.Thumbnail,
		Url:       s.Url,
	}
}

func songToRepo(s Song) roomRepo.Song {
	return roomRepo.Song{
		Id:        s.Id,
		Title:     s.Title,
		Author:    s.Author,
		Duration:  s.Duration,
		Thumbnail: s.Thumbnail,
		Url:       s.Url,
	}
}

func songsFromRepo(songs []roomRepo.Song) []Song {
	result := make([]Song, 0, len(songs))
	for _, s := range songs {
		result = append(result, songFromRepo(s))
	}

	return result
}

func requestFromRepo(sr roomRepo.SongRequest) SongRequest {
	return SongRequest{
		RequestId:   sr.RequestId,
		Song:        songFromRepo(sr.Song),
		RequestedBy: sr.RequestedBy,
		RequestedAt: sr.RequestedAt,
	}
}

func requestsFromRepo(requests []roomRepo.SongRequest) []SongRequest {
	result := make([]SongRequest, 0, len(requests))
	for _, sr := range requests {
		result = append(result, requestFromRepo(sr))
	}

	return result
}

func statsFromRepo(s roomRepo.Stats) Stats {
	return Stats{
		Bitrate:     s.Bitrate,
		Latency:     s.Latency,
		BufferLevel: s.BufferLevel,
		Quality:     s.Quality,
	}
}
