package room

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

type Stats struct {
	Bitrate     int     `json:"bitrate"`
	Latency     int     `json:"latency"`
	BufferLevel float64 `json:"buffer_level"`
	Quality     string  `json:"quality"`
}

// Playback tracks the current play state. StartedAt is the unix-millisecond
// instant playback (re)started while playing, and the frozen elapsed offset
// in milliseconds while paused.
type Playback struct {
	Playing   bool  `json:"playing"`
	StartedAt int64 `json:"started_at"`
}

type Room struct {
	RoomId           string        `json:"room_id"`
	RoomName         string        `json:"room_name"`
	HostName         string        `json:"host_name"`
	HostId           string        `json:"host_id"`
	Participants     []string      `json:"participants"`
	Cohosts          []string      `json:"cohosts"`
	IsLive           bool          `json:"is_live"`
	Stats            Stats         `json:"stats"`
	Queue            []Song        `json:"queue"`
	CurrentSongIndex int           `json:"current_song_index"`
	Playback         Playback      `json:"playback"`
	SongRequests     []SongRequest `json:"song_requests"`
	CreatedAt        int64         `json:"created_at"`
}
