package session

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// Session is the only association between a connection and the room it
// occupies. Room participant lists are derived from it.
type Session struct {
	RoomId   string
	Username string
	IsHost   bool
}
