package handlers

import (
	"slices"

	"github.com/EnzoPetry/Dice/internal/config"
	"github.com/EnzoPetry/Dice/internal/wire"
)

// JoinGroup handles a joinGroup event. currentRooms is the set of rooms the
// socket is already in.
//
// Re-joining a room the socket is already in is a no-op: membership is
// idempotent and the room must not see a second user_joined notification.
// Under the exclusive room policy, joining evicts every other current room
// and notifies each of them.
func JoinGroup(deps Deps, auth AuthContext, currentRooms []int64, groupID int64, policy config.RoomPolicy) EventResult {
	if groupID <= 0 {
		return EventResult{}
	}
	if slices.Contains(currentRooms, groupID) {
		return EventResult{}
	}

	var result EventResult
	now := deps.Now()

	if policy == config.RoomPolicyExclusive {
		for _, previous := range currentRooms {
			result.roomOps = append(result.roomOps, newLeaveOp(previous))
			result.broadcasts = append(result.broadcasts, newBroadcastSkippingSelf(
				previous,
				wire.EventUserLeft,
				wire.NewLeftPresence(auth.UserID(), auth.DisplayName(), now),
			))
		}
	}

	result.roomOps = append(result.roomOps, newJoinOp(groupID))
	result.broadcasts = append(result.broadcasts, newBroadcastSkippingSelf(
		groupID,
		wire.EventUserJoined,
		wire.NewJoinedPresence(auth.UserID(), auth.DisplayName(), now),
	))

	return result
}
