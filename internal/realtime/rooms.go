package realtime

import (
	"sort"
	"sync"

	"github.com/EnzoPetry/Dice/internal/wire"
)

// Emitter delivers a single event to one connected socket.
type Emitter interface {
	Emit(event wire.OutboundEvent, payload any)
}

// RoomRegistry tracks, per group, the set of sockets currently in that
// group's room. The in-memory implementation below is single-process; a
// multi-process deployment swaps in a shared pub/sub-backed registry
// without changing the gateway's contract.
type RoomRegistry interface {
	// Join adds a socket to a room. Joining twice is the same as joining
	// once; no duplicate delivery results.
	Join(groupID int64, socketID string, em Emitter)
	// Leave removes a socket from a room. Leaving a room the socket is
	// not in is a no-op.
	Leave(groupID int64, socketID string)
	// Broadcast delivers an event to every socket currently in the room,
	// optionally excluding one socket id. Broadcasting to an empty room
	// is a silent no-op.
	Broadcast(groupID int64, event wire.OutboundEvent, payload any, skipSocketID string)
	// MembersOf returns the socket ids currently in the room, sorted.
	MembersOf(groupID int64) []string
}

// MemoryRegistry is the in-memory, single-process RoomRegistry.
type MemoryRegistry struct {
	mu    sync.RWMutex
	rooms map[int64]map[string]Emitter
}

// NewMemoryRegistry creates an empty in-memory room registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		rooms: make(map[int64]map[string]Emitter),
	}
}

func (r *MemoryRegistry) Join(groupID int64, socketID string, em Emitter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[groupID]
	if !ok {
		room = make(map[string]Emitter)
		r.rooms[groupID] = room
	}
	room[socketID] = em
}

func (r *MemoryRegistry) Leave(groupID int64, socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[groupID]
	if !ok {
		return
	}
	delete(room, socketID)
	if len(room) == 0 {
		delete(r.rooms, groupID)
	}
}

func (r *MemoryRegistry) Broadcast(groupID int64, event wire.OutboundEvent, payload any, skipSocketID string) {
	// Snapshot under the read lock so a slow emitter cannot hold up
	// joins and leaves, and so membership cannot change mid-delivery.
	r.mu.RLock()
	room := r.rooms[groupID]
	targets := make([]Emitter, 0, len(room))
	for socketID, em := range room {
		if skipSocketID != "" && socketID == skipSocketID {
			continue
		}
		targets = append(targets, em)
	}
	r.mu.RUnlock()

	for _, em := range targets {
		em.Emit(event, payload)
	}
}

func (r *MemoryRegistry) MembersOf(groupID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[groupID]
	members := make([]string, 0, len(room))
	for socketID := range room {
		members = append(members, socketID)
	}
	sort.Strings(members)
	return members
}
