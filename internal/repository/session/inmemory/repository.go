package inmemory

import (
	"sync"

	"github.com/listenroom/server/internal/repository/session"
)

type repo struct {
	sessions map[string]session.Session
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{sessions: make(map[string]session.Session)}
}

func (r *repo) CreateSession(connId string, s session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[connId] = s
}

func (r *repo) GetSession(connId string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[connId]
	if !exists {
		return session.Session{}, session.ErrSessionNotFound
	}

	return s, nil
}

func (r *repo) DestroySession(connId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, connId)
}

func (r *repo) SetIsHost(connId string, isHost bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, exists := r.sessions[connId]; exists {
		s.IsHost = isHost
		r.sessions[connId] = s
	}
}
