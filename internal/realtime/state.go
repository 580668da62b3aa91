package realtime

import (
	"sync"

	"github.com/EnzoPetry/Dice/internal/wire"
	socket "github.com/zishang520/socket.io/servers/socket/v3"
)

// socketState is the per-connection state kept for the lifetime of one
// authenticated socket.
type socketState struct {
	userID      string
	displayName string
	email       string
	client      *socket.Socket

	mu    sync.Mutex
	rooms map[int64]struct{}
}

func newSocketState(userID, displayName, email string, client *socket.Socket) *socketState {
	return &socketState{
		userID:      userID,
		displayName: displayName,
		email:       email,
		client:      client,
		rooms:       make(map[int64]struct{}),
	}
}

// Rooms returns a snapshot of the rooms this socket is in.
func (s *socketState) Rooms() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]int64, 0, len(s.rooms))
	for groupID := range s.rooms {
		rooms = append(rooms, groupID)
	}
	return rooms
}

func (s *socketState) addRoom(groupID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[groupID] = struct{}{}
}

func (s *socketState) removeRoom(groupID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, groupID)
}

// Emit implements Emitter on top of the underlying Socket.IO socket.
func (s *socketState) Emit(event wire.OutboundEvent, payload any) {
	if err := s.client.Emit(string(event), payload); err != nil {
		// The socket is gone; its disconnect handler runs the cleanup.
		return
	}
}
