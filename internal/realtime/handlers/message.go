package handlers

import (
	"strings"

	"github.com/EnzoPetry/Dice/internal/wire"
)

// MessageIngest validates a message event payload and returns an enqueue
// instruction when successful. On validation failure it returns a
// message_error reply for the sender; the room sees nothing.
//
// Membership authorization is not checked here; the message store is the
// authority on that when the enqueued append runs.
func MessageIngest(auth AuthContext, payload wire.MessagePayload) (*Enqueue, EventResult) {
	if strings.TrimSpace(payload.Content) == "" || payload.GroupID <= 0 {
		return nil, EventResult{
			replies: []Reply{newReply(wire.EventMessageError, wire.ErrorPayload{Message: "Dados inválidos"})},
		}
	}

	return &Enqueue{
		userID:   auth.UserID(),
		groupID:  int64(payload.GroupID),
		content:  payload.Content,
		socketID: auth.SocketID(),
	}, EventResult{}
}
