package room

import (
	"context"
	"slices"
	"strings"

	"github.com/gorilla/websocket"

	roomRepo "github.com/listenroom/server/internal/repository/room"
)

func (s service) getConnsByRoomId(ctx context.Context, roomId string) []*websocket.Conn {
	rm, err := s.roomRepo.GetRoom(roomId)
	if err != nil {
		return nil
	}

	conns := make([]*websocket.Conn, 0, len(rm.Participants))
	for _, connId := range rm.Participants {
		conn, err := s.connRepo.GetConn(connId)
		if err != nil {
			// participant in a rejoin window, nothing to deliver to
			s.logger.DebugContext(ctx, "no connection for participant", "conn_id", connId)
			continue
		}

		conns = append(conns, conn)
	}

	return conns
}

func (s service) getConnsExcept(ctx context.Context, roomId, exceptConnId string) []*websocket.Conn {
	rm, err := s.roomRepo.GetRoom(roomId)
	if err != nil {
		return nil
	}

	conns := make([]*websocket.Conn, 0, len(rm.Participants))
	for _, connId := range rm.Participants {
		if connId == exceptConnId {
			continue
		}

		conn, err := s.connRepo.GetConn(connId)
		if err != nil {
			continue
		}

		conns = append(conns, conn)
	}

	return conns
}

func (s service) getParticipants(rm *roomRepo.Room) []Participant {
	participants := make([]Participant, 0, len(rm.Participants))
	for _, connId := range rm.Participants {
		username := ""
		if sess, err := s.sessionRepo.GetSession(connId); err == nil {
			username = sess.Username
		}

		participants = append(participants, Participant{
			Id:       connId,
			Username: username,
			IsHost:   connId == rm.HostId,
			IsCohost: slices.Contains(rm.Cohosts, connId),
		})
	}

	return participants
}

func (s service) getPlaylist(roomId string) Playlist {
	playlist := Playlist{Queue: songsFromRepo(s.roomRepo.GetQueue(roomId))}

	if current, err := s.roomRepo.GetCurrentSong(roomId); err == nil && current != nil {
		song := songFromRepo(*current)
		playlist.CurrentSong = &song
	}

	if playback, err := s.roomRepo.GetPlaybackState(roomId); err == nil {
		playlist.Playing = playback.Playing
		playlist.PlayingFrom = playback.PlayingFrom
	}

	return playlist
}

func (s service) getRoomState(rm *roomRepo.Room) RoomState {
	return RoomState{
		RoomId:       rm.RoomId,
		RoomName:     rm.RoomName,
		HostName:     rm.HostName,
		HostId:       rm.HostId,
		Participants: s.getParticipants(rm),
		IsLive:       rm.IsLive,
		Playlist:     s.getPlaylist(rm.RoomId),
		SongRequests: requestsFromRepo(rm.SongRequests),
		CreatedAt:    rm.CreatedAt,
	}
}

// resolveUsername deduplicates a display name against the room's current
// participants by appending a short random suffix until it is unique.
func (s service) resolveUsername(rm *roomRepo.Room, username string) string {
	taken := make(map[string]struct{}, len(rm.Participants))
	for _, connId := range rm.Participants {
		if sess, err := s.sessionRepo.GetSession(connId); err == nil {
			taken[sess.Username] = struct{}{}
		}
	}

	resolved := username
	for {
		if _, exists := taken[resolved]; !exists {
			return resolved
		}

		resolved = username + "-" + s.generator.GenerateRandomString(nameSuffixLen)
	}
}

// destroySessions reclaims the leaver's session, and every remaining
// member's session when the room closed with it.
func (s service) destroySessions(connId string, members []string, closed bool) {
	s.sessionRepo.DestroySession(connId)

	if !closed {
		return
	}

	for _, memberId := range members {
		s.sessionRepo.DestroySession(memberId)
	}
}

// checkMember verifies the connection belongs to the given room.
func (s service) checkMember(connId, roomId string) error {
	sess, err := s.sessionRepo.GetSession(connId)
	if err != nil || sess.RoomId != roomId {
		return ErrPermissionDenied
	}

	return nil
}

func (s service) checkHost(connId, roomId string) error {
	if _, err := s.roomRepo.GetRoom(roomId); err != nil {
		return err
	}

	if !s.roomRepo.IsHost(roomId, connId) {
		return ErrPermissionDenied
	}

	return nil
}

func (s service) checkCanManageSongs(connId, roomId string) error {
	if _, err := s.roomRepo.GetRoom(roomId); err != nil {
		return err
	}

	if !s.roomRepo.CanManageSongs(roomId, connId) {
		return ErrPermissionDenied
	}

	return nil
}

func trimmedLen(v string) int {
	return len([]rune(strings.TrimSpace(v)))
}
