package room

type CreateRoomParams struct {
	RoomName string
	HostName string
	HostId   string
}

type AddParticipantParams struct {
	RoomId string
	ConnId string
}

type RemoveParticipantParams struct {
	RoomId string
	ConnId string
	// Promote enables host succession when the removed participant is the
	// host: the longest-tenured remaining participant takes over instead of
	// the room closing. Used by the ungraceful-disconnect path.
	Promote bool
}

type RemoveParticipantResult struct {
	RoomId      string
	Closed      bool
	HostChanged bool
	NewHostId   string
}

type AddSongParams struct {
	RoomId string
	Song   Song
}

type RemoveSongResult struct {
	Removed        Song
	RemovedCurrent bool
	Queue          []Song
}

type MoveSongParams struct {
	RoomId    string
	FromIndex int
	ToIndex   int
}

// PlaybackState is the client-facing view: PlayingFrom is always an
// absolute unix-millisecond instant clients subtract from their own clock.
type PlaybackState struct {
	Playing     bool  `json:"playing"`
	PlayingFrom int64 `json:"playing_from"`
}

type AddSongRequestParams struct {
	RoomId      string
	Song        Song
	RequestedBy string
}

type ApproveSongRequestResult struct {
	Approved SongRequest
	Requests []SongRequest
	Queue    []Song
}
