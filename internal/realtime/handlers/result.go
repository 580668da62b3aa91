package handlers

import "github.com/EnzoPetry/Dice/internal/wire"

// RoomOp describes a single registry mutation requested by a handler.
type RoomOp struct {
	join    bool
	groupID int64
}

func newJoinOp(groupID int64) RoomOp  { return RoomOp{join: true, groupID: groupID} }
func newLeaveOp(groupID int64) RoomOp { return RoomOp{join: false, groupID: groupID} }

// IsJoin reports whether the op adds the socket to the room.
func (o RoomOp) IsJoin() bool { return o.join }

// GroupID returns the room the op targets.
func (o RoomOp) GroupID() int64 { return o.groupID }

// Broadcast describes a single room emission produced by a handler call.
type Broadcast struct {
	groupID  int64
	event    wire.OutboundEvent
	payload  any
	skipSelf bool
}

func newBroadcastSkippingSelf(groupID int64, event wire.OutboundEvent, payload any) Broadcast {
	return Broadcast{groupID: groupID, event: event, payload: payload, skipSelf: true}
}

// GroupID returns the target room.
func (b Broadcast) GroupID() int64 { return b.groupID }

// Event returns the outbound event name.
func (b Broadcast) Event() wire.OutboundEvent { return b.event }

// Payload returns the event payload.
func (b Broadcast) Payload() any { return b.payload }

// SkipSelf reports whether the transport adapter should skip emitting the
// event back to the calling socket.
func (b Broadcast) SkipSelf() bool { return b.skipSelf }

// Reply describes an event emitted to the calling socket only.
type Reply struct {
	event   wire.OutboundEvent
	payload any
}

func newReply(event wire.OutboundEvent, payload any) Reply {
	return Reply{event: event, payload: payload}
}

// Event returns the outbound event name.
func (r Reply) Event() wire.OutboundEvent { return r.event }

// Payload returns the event payload.
func (r Reply) Payload() any { return r.payload }

// Enqueue describes a validated message ingest operation for the per-group
// queue.
type Enqueue struct {
	userID   string
	groupID  int64
	content  string
	socketID string
}

// UserID returns the sender's user id.
func (e Enqueue) UserID() string { return e.userID }

// GroupID returns the target group.
func (e Enqueue) GroupID() int64 { return e.groupID }

// Content returns the raw message content.
func (e Enqueue) Content() string { return e.content }

// SocketID returns the socket that originated the message, so failures can
// be reported to the sender only.
func (e Enqueue) SocketID() string { return e.socketID }

// EventResult is the output of a handler invocation. The transport adapter
// applies room ops first, then broadcasts, then replies.
type EventResult struct {
	roomOps    []RoomOp
	broadcasts []Broadcast
	replies    []Reply
}

// RoomOps returns the registry mutations requested by the handler.
func (r EventResult) RoomOps() []RoomOp { return r.roomOps }

// Broadcasts returns the room emissions requested by the handler.
func (r EventResult) Broadcasts() []Broadcast { return r.broadcasts }

// Replies returns the caller-only emissions requested by the handler.
func (r EventResult) Replies() []Reply { return r.replies }
