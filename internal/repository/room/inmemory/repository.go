package inmemory

import (
	"sync"
	"time"

	"github.com/listenroom/server/internal/repository/room"
)

const chatLogLimit = 100

type Config struct {
	MembersLimit  int
	PlaylistLimit int
}

// roomState is the mutable record behind every snapshot handed out by the
// repo. queueDone marks a queue that was played past its end, so repeated
// advance calls keep reporting "nothing next" instead of restarting.
type roomState struct {
	room.Room
	queueDone      bool
	chatMessageIds []string
}

type repo struct {
	rooms map[string]*roomState
	mu    sync.RWMutex
	cfg   Config
	now   func() int64
}

func NewRepo(cfg *Config) *repo {
	r := repo{
		rooms: make(map[string]*roomState),
		cfg:   *cfg,
		now:   func() int64 { return time.Now().UnixMilli() },
	}

	if r.cfg.MembersLimit <= 0 {
		r.cfg.MembersLimit = 100
	}
	if r.cfg.PlaylistLimit <= 0 {
		r.cfg.PlaylistLimit = 500
	}

	return &r
}

// snapshot copies the room so callers never alias the live state.
func snapshot(rs *roomState) room.Room {
	cp := rs.Room
	cp.Participants = append([]string(nil), rs.Participants...)
	cp.Cohosts = append([]string(nil), rs.Cohosts...)
	cp.Queue = append([]room.Song(nil), rs.Queue...)
	cp.SongRequests = append([]room.SongRequest(nil), rs.SongRequests...)

	return cp
}
