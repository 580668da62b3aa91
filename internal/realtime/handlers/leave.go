package handlers

import (
	"slices"

	"github.com/EnzoPetry/Dice/internal/wire"
)

// LeaveGroup handles a leaveGroup event. Leaving a room the socket is not
// in is a no-op; the room only hears user_left from actual members.
func LeaveGroup(deps Deps, auth AuthContext, currentRooms []int64, groupID int64) EventResult {
	if !slices.Contains(currentRooms, groupID) {
		return EventResult{}
	}

	return EventResult{
		roomOps: []RoomOp{newLeaveOp(groupID)},
		broadcasts: []Broadcast{newBroadcastSkippingSelf(
			groupID,
			wire.EventUserLeft,
			wire.NewLeftPresence(auth.UserID(), auth.DisplayName(), deps.Now()),
		)},
	}
}

// Disconnect handles transport-level disconnection. It runs the same
// cleanup as an explicit leave for every room the socket was in, and does
// nothing when the socket never joined a room.
func Disconnect(deps Deps, auth AuthContext, currentRooms []int64) EventResult {
	var result EventResult
	now := deps.Now()

	for _, groupID := range currentRooms {
		result.roomOps = append(result.roomOps, newLeaveOp(groupID))
		result.broadcasts = append(result.broadcasts, newBroadcastSkippingSelf(
			groupID,
			wire.EventUserLeft,
			wire.NewLeftPresence(auth.UserID(), auth.DisplayName(), now),
		))
	}

	return result
}
