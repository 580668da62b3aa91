package realtime

import (
	"context"
	"encoding/json"

	"github.com/EnzoPetry/Dice/internal/logger"
	"github.com/EnzoPetry/Dice/internal/realtime/handlers"
	"github.com/EnzoPetry/Dice/internal/wire"
	socket "github.com/zishang520/socket.io/servers/socket/v3"
)

// registerClientHandlers wires the inbound event set for an authenticated
// socket. Handlers are only registered after session validation, so an
// unauthenticated connection can never join rooms or send messages.
func (g *Gateway) registerClientHandlers(client *socket.Socket, socketID string) {
	client.On(string(wire.EventJoinGroup), func(data ...any) {
		state := g.getState(socketID)
		if state == nil {
			return
		}
		groupID, ok := firstGroupID(data)
		if !ok {
			logger.Warnf("joinGroup with invalid group id from %s (socket %s)", state.userID, socketID)
			return
		}

		result := handlers.JoinGroup(g.deps, g.authContext(state, socketID), state.Rooms(), groupID, g.policy)
		g.applyResult(client, socketID, state, result)
		logger.Infof("User %s joined group %d", state.userID, groupID)
	})

	client.On(string(wire.EventLeaveGroup), func(data ...any) {
		state := g.getState(socketID)
		if state == nil {
			return
		}
		groupID, ok := firstGroupID(data)
		if !ok {
			return
		}

		result := handlers.LeaveGroup(g.deps, g.authContext(state, socketID), state.Rooms(), groupID)
		g.applyResult(client, socketID, state, result)
		logger.Infof("User %s left group %d", state.userID, groupID)
	})

	client.On(string(wire.EventMessage), func(data ...any) {
		state := g.getState(socketID)
		if state == nil {
			return
		}
		if len(data) == 0 {
			return
		}

		var payload wire.MessagePayload
		if err := decodeAny(data[0], &payload); err != nil {
			logger.Warnf("Message data decode error from %s: %v (type=%T)", state.userID, err, data[0])
			state.Emit(wire.EventMessageError, wire.ErrorPayload{Message: "Dados inválidos"})
			return
		}

		enqueue, result := handlers.MessageIngest(g.authContext(state, socketID), payload)
		g.applyResult(client, socketID, state, result)
		if enqueue == nil {
			return
		}
		g.ingest.EnqueueMessage(context.Background(), enqueue.UserID(), enqueue.GroupID(), enqueue.Content(), enqueue.SocketID())
	})

	client.On("disconnect", func(data ...any) {
		state := g.getState(socketID)
		if state == nil {
			return
		}
		logger.Infof("User disconnected: %s (socket %s)", state.userID, socketID)

		// Runs on every exit path: explicit close, error, or dropped
		// transport. Each room the socket was in hears exactly one
		// user_left.
		result := handlers.Disconnect(g.deps, g.authContext(state, socketID), state.Rooms())
		g.applyResult(client, socketID, state, result)
		g.sockets.Delete(socketID)
	})
}

func (g *Gateway) authContext(state *socketState, socketID string) handlers.AuthContext {
	return handlers.NewAuthContext(state.userID, state.displayName, socketID)
}

// applyResult executes a handler result against the registry and the
// transport: room ops first, then broadcasts, then caller-only replies.
func (g *Gateway) applyResult(client *socket.Socket, socketID string, state *socketState, result handlers.EventResult) {
	for _, op := range result.RoomOps() {
		if op.IsJoin() {
			g.rooms.Join(op.GroupID(), socketID, state)
			state.addRoom(op.GroupID())
		} else {
			g.rooms.Leave(op.GroupID(), socketID)
			state.removeRoom(op.GroupID())
		}
	}

	for _, b := range result.Broadcasts() {
		skip := ""
		if b.SkipSelf() {
			skip = socketID
		}
		g.rooms.Broadcast(b.GroupID(), b.Event(), b.Payload(), skip)
	}

	for _, r := range result.Replies() {
		client.Emit(string(r.Event()), r.Payload())
	}
}

func decodeAny(input any, out any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// firstGroupID extracts the group id argument of a joinGroup/leaveGroup
// event, accepting the loose typing browsers produce.
func firstGroupID(data []any) (int64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	id, ok := wire.CoerceGroupID(data[0])
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
