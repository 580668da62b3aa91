package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/EnzoPetry/Dice/internal/logger"
	"github.com/EnzoPetry/Dice/internal/store"
	"github.com/EnzoPetry/Dice/internal/wire"
)

// MessageAppender is the message store surface the ingest queue needs.
type MessageAppender interface {
	Append(ctx context.Context, userID string, groupID int64, content string) (store.StoredMessage, error)
}

// IngestEmitter delivers ingest outcomes to connected clients.
type IngestEmitter interface {
	// BroadcastToGroup delivers an event to every socket in a room,
	// including the sender.
	BroadcastToGroup(groupID int64, event wire.OutboundEvent, payload any)
	// EmitToSocket delivers an event to a single socket.
	EmitToSocket(socketID string, event wire.OutboundEvent, payload any)
}

// IngestManager owns per-group ingest queues and provides serialized
// entrypoints.
//
// All appends for a given group run on one goroutine, so the room sees
// messages in store-completion order and that order matches submission
// order within the group even under concurrent Socket.IO callbacks.
type IngestManager struct {
	store   MessageAppender
	emitter IngestEmitter

	mu     sync.Mutex
	queues map[int64]*groupQueue
}

// NewIngestManager creates a per-group ingest queue manager.
func NewIngestManager(appender MessageAppender, emitter IngestEmitter) *IngestManager {
	return &IngestManager{
		store:   appender,
		emitter: emitter,
		queues:  make(map[int64]*groupQueue),
	}
}

// EnqueueMessage schedules a message append for a group. Failures are
// reported to the originating socket only.
func (m *IngestManager) EnqueueMessage(ctx context.Context, userID string, groupID int64, content, socketID string) {
	if groupID <= 0 {
		return
	}
	q := m.getOrCreate(groupID)
	q.enqueue(messageEvent{
		ctx:      ctx,
		userID:   userID,
		groupID:  groupID,
		content:  content,
		socketID: socketID,
	})
}

func (m *IngestManager) getOrCreate(groupID int64) *groupQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.queues[groupID]; ok {
		return q
	}
	q := newGroupQueue(m.store, m.emitter, groupID)
	m.queues[groupID] = q
	return q
}

type messageEvent struct {
	ctx      context.Context
	userID   string
	groupID  int64
	content  string
	socketID string
}

type groupQueue struct {
	store   MessageAppender
	emitter IngestEmitter

	groupID int64
	events  chan messageEvent

	startOnce sync.Once
}

func newGroupQueue(appender MessageAppender, emitter IngestEmitter, groupID int64) *groupQueue {
	return &groupQueue{
		store:   appender,
		emitter: emitter,
		groupID: groupID,
		events:  make(chan messageEvent, 256),
	}
}

func (q *groupQueue) enqueue(evt messageEvent) {
	q.startOnce.Do(func() { go q.loop() })
	select {
	case q.events <- evt:
	default:
		// Avoid blocking Socket.IO callbacks indefinitely; reject under
		// overload and tell the sender.
		logger.Warnf("[ingest] group %d queue full; rejecting message from %s", q.groupID, evt.userID)
		q.emitter.EmitToSocket(evt.socketID, wire.EventMessageError, wire.ErrorPayload{Message: "Erro ao enviar mensagem"})
	}
}

func (q *groupQueue) loop() {
	for evt := range q.events {
		q.handleMessage(evt)
	}
}

func (q *groupQueue) handleMessage(evt messageEvent) {
	ctx := evt.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	msg, err := q.store.Append(ctx, evt.userID, evt.groupID, evt.content)
	if err != nil {
		logger.Warnf("[ingest] append failed for user %s in group %d: %v", evt.userID, evt.groupID, err)
		q.emitter.EmitToSocket(evt.socketID, wire.EventMessageError, wire.ErrorPayload{Message: ingestErrorMessage(err)})
		return
	}

	// The sender sees its own message through this broadcast; there is no
	// separate local echo.
	q.emitter.BroadcastToGroup(evt.groupID, wire.EventChatMessage, msg)
}

func ingestErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrEmptyContent):
		return "Dados inválidos"
	case errors.Is(err, store.ErrGroupNotFound):
		return "Grupo não encontrado"
	case errors.Is(err, store.ErrNotAMember):
		return "Você não é membro deste grupo"
	default:
		return "Erro ao enviar mensagem"
	}
}
