// Package wire defines the realtime event surface shared by the gateway,
// its handlers and the HTTP layer. Event names form a closed set; anything
// outside it is rejected at the transport boundary.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// InboundEvent names an event a client may send.
type InboundEvent string

const (
	EventJoinGroup  InboundEvent = "joinGroup"
	EventLeaveGroup InboundEvent = "leaveGroup"
	EventMessage    InboundEvent = "message"
)

// OutboundEvent names an event the server may emit.
type OutboundEvent string

const (
	EventAuthSuccess  OutboundEvent = "auth_success"
	EventAuthError    OutboundEvent = "auth_error"
	EventUserJoined   OutboundEvent = "user_joined"
	EventUserLeft     OutboundEvent = "user_left"
	EventChatMessage  OutboundEvent = "message"
	EventMessageError OutboundEvent = "message_error"
)

// AuthUser is the identity payload of auth_success.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthSuccessPayload confirms a validated connection.
type AuthSuccessPayload struct {
	User AuthUser `json:"user"`
}

// ErrorPayload carries a user-facing failure notice (auth_error,
// message_error).
type ErrorPayload struct {
	Message string `json:"message"`
}

// PresencePayload is the ephemeral user_joined/user_left notification. It
// is never persisted.
type PresencePayload struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	SendAt    string `json:"sendAt"`
}

// NewJoinedPresence builds the user_joined notification for a user.
func NewJoinedPresence(userID, userName string, at time.Time) PresencePayload {
	return PresencePayload{
		ID:        fmt.Sprintf("joined-%d-%s", at.UnixMilli(), userID),
		UserID:    userID,
		UserName:  userName,
		Message:   fmt.Sprintf("%s entrou no chat", userName),
		Timestamp: at.UnixMilli(),
		SendAt:    at.UTC().Format(time.RFC3339Nano),
	}
}

// NewLeftPresence builds the user_left notification for a user.
func NewLeftPresence(userID, userName string, at time.Time) PresencePayload {
	return PresencePayload{
		ID:        fmt.Sprintf("left-%d-%s", at.UnixMilli(), userID),
		UserID:    userID,
		UserName:  userName,
		Message:   fmt.Sprintf("%s saiu do chat", userName),
		Timestamp: at.UnixMilli(),
		SendAt:    at.UTC().Format(time.RFC3339Nano),
	}
}

// MessagePayload is the inbound message event body.
type MessagePayload struct {
	Content string  `json:"content"`
	GroupID GroupID `json:"groupId"`
}

// GroupID is a group identifier on the wire. Browser clients send it as a
// number or a string depending on where the page pulled it from, so it
// accepts both when decoding.
type GroupID int64

// UnmarshalJSON accepts numeric and string-encoded group ids.
func (g *GroupID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	id, ok := CoerceGroupID(raw)
	if !ok {
		return fmt.Errorf("invalid group id %s", data)
	}
	*g = GroupID(id)
	return nil
}

// CoerceGroupID converts a loosely-typed decoded value to a group id.
func CoerceGroupID(v any) (int64, bool) {
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		return int64(id), true
	case json.Number:
		n, err := id.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
