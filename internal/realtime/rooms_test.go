package realtime

import (
	"sync"
	"testing"

	"github.com/EnzoPetry/Dice/internal/wire"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	event   wire.OutboundEvent
	payload any
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeEmitter) Emit(event wire.OutboundEvent, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{event: event, payload: payload})
}

func (f *fakeEmitter) Events() []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedEvent(nil), f.events...)
}

func TestMemoryRegistry_JoinAndBroadcast(t *testing.T) {
	r := NewMemoryRegistry()
	alice := &fakeEmitter{}
	bob := &fakeEmitter{}

	r.Join(7, "s1", alice)
	r.Join(7, "s2", bob)

	r.Broadcast(7, wire.EventChatMessage, "hello", "")

	require.Len(t, alice.Events(), 1)
	require.Len(t, bob.Events(), 1)
	require.Equal(t, wire.EventChatMessage, alice.Events()[0].event)
}

func TestMemoryRegistry_JoinIsIdempotent(t *testing.T) {
	r := NewMemoryRegistry()
	alice := &fakeEmitter{}

	r.Join(7, "s1", alice)
	r.Join(7, "s1", alice)

	r.Broadcast(7, wire.EventChatMessage, "hello", "")

	// One delivery per broadcast, never two.
	require.Len(t, alice.Events(), 1)
	require.Equal(t, []string{"s1"}, r.MembersOf(7))
}

func TestMemoryRegistry_BroadcastExcludesSender(t *testing.T) {
	r := NewMemoryRegistry()
	alice := &fakeEmitter{}
	bob := &fakeEmitter{}

	r.Join(7, "s1", alice)
	r.Join(7, "s2", bob)

	r.Broadcast(7, wire.EventUserJoined, "presence", "s1")

	require.Empty(t, alice.Events())
	require.Len(t, bob.Events(), 1)
}

func TestMemoryRegistry_BroadcastScopedToGroup(t *testing.T) {
	r := NewMemoryRegistry()
	alice := &fakeEmitter{}
	carol := &fakeEmitter{}

	r.Join(7, "s1", alice)
	r.Join(9, "s3", carol)

	r.Broadcast(7, wire.EventChatMessage, "hello", "")

	require.Len(t, alice.Events(), 1)
	require.Empty(t, carol.Events())
}

func TestMemoryRegistry_BroadcastToEmptyRoomIsNoop(t *testing.T) {
	r := NewMemoryRegistry()
	// Must not panic or error.
	r.Broadcast(99, wire.EventChatMessage, "hello", "")
	require.Empty(t, r.MembersOf(99))
}

func TestMemoryRegistry_LeaveIsNoopForNonMembers(t *testing.T) {
	r := NewMemoryRegistry()
	alice := &fakeEmitter{}
	r.Join(7, "s1", alice)

	r.Leave(7, "s2")
	r.Leave(42, "s1")

	require.Equal(t, []string{"s1"}, r.MembersOf(7))
}

func TestMemoryRegistry_LeaveStopsDelivery(t *testing.T) {
	r := NewMemoryRegistry()
	alice := &fakeEmitter{}
	bob := &fakeEmitter{}

	r.Join(7, "s1", alice)
	r.Join(7, "s2", bob)
	r.Leave(7, "s1")

	r.Broadcast(7, wire.EventChatMessage, "hello", "")

	require.Empty(t, alice.Events())
	require.Len(t, bob.Events(), 1)
}
