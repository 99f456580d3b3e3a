package inmemory

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/listenroom/server/internal/repository/connection"
)

type repo struct {
	byConn map[*websocket.Conn]string
	byId   map[string]*websocket.Conn
	mu     sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		byConn: make(map[*websocket.Conn]string),
		byId:   make(map[string]*websocket.Conn),
	}
}

func (r *repo) Add(conn *websocket.Conn, connId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byConn[conn] != "" || r.byId[connId] != nil {
		return connection.ErrAlreadyExists
	}

	r.byConn[conn] = connId
	r.byId[connId] = conn

	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	connId, exists := r.byConn[conn]
	if !exists {
		return "", connection.ErrNotFound
	}

	delete(r.byConn, conn)
	delete(r.byId, connId)

	return connId, nil
}

func (r *repo) RemoveByConnId(connId string) (*websocket.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, exists := r.byId[connId]
	if !exists {
		return nil, connection.ErrNotFound
	}

	delete(r.byConn, conn)
	delete(r.byId, connId)

	return conn, nil
}

func (r *repo) GetConnId(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connId, exists := r.byConn[conn]
	if !exists {
		return "", connection.ErrNotFound
	}

	return connId, nil
}

func (r *repo) GetConn(connId string) (*websocket.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, exists := r.byId[connId]
	if !exists {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}
