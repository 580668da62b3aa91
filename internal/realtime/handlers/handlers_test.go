package handlers

import (
	"testing"
	"time"

	"github.com/EnzoPetry/Dice/internal/config"
	"github.com/EnzoPetry/Dice/internal/wire"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testDeps() Deps {
	return NewDeps(func() time.Time { return testNow })
}

func alice() AuthContext {
	return NewAuthContext("u1", "Alice", "s1")
}

func TestJoinGroup_FirstJoin(t *testing.T) {
	res := JoinGroup(testDeps(), alice(), nil, 7, config.RoomPolicyExclusive)

	require.Len(t, res.RoomOps(), 1)
	require.True(t, res.RoomOps()[0].IsJoin())
	require.Equal(t, int64(7), res.RoomOps()[0].GroupID())

	require.Len(t, res.Broadcasts(), 1)
	b := res.Broadcasts()[0]
	require.Equal(t, int64(7), b.GroupID())
	require.Equal(t, wire.EventUserJoined, b.Event())
	require.True(t, b.SkipSelf())

	presence, ok := b.Payload().(wire.PresencePayload)
	require.True(t, ok)
	require.Equal(t, "u1", presence.UserID)
	require.Equal(t, "Alice", presence.UserName)
	require.Equal(t, "Alice entrou no chat", presence.Message)
	require.Equal(t, testNow.UnixMilli(), presence.Timestamp)
}

func TestJoinGroup_RejoinIsNoop(t *testing.T) {
	res := JoinGroup(testDeps(), alice(), []int64{7}, 7, config.RoomPolicyExclusive)

	require.Empty(t, res.RoomOps())
	require.Empty(t, res.Broadcasts())
	require.Empty(t, res.Replies())
}

func TestJoinGroup_ExclusiveEvictsPreviousRoom(t *testing.T) {
	res := JoinGroup(testDeps(), alice(), []int64{3}, 7, config.RoomPolicyExclusive)

	require.Len(t, res.RoomOps(), 2)
	require.False(t, res.RoomOps()[0].IsJoin())
	require.Equal(t, int64(3), res.RoomOps()[0].GroupID())
	require.True(t, res.RoomOps()[1].IsJoin())
	require.Equal(t, int64(7), res.RoomOps()[1].GroupID())

	require.Len(t, res.Broadcasts(), 2)
	require.Equal(t, wire.EventUserLeft, res.Broadcasts()[0].Event())
	require.Equal(t, int64(3), res.Broadcasts()[0].GroupID())
	require.Equal(t, wire.EventUserJoined, res.Broadcasts()[1].Event())
	require.Equal(t, int64(7), res.Broadcasts()[1].GroupID())
}

func TestJoinGroup_MultiPolicyKeepsPreviousRoom(t *testing.T) {
	res := JoinGroup(testDeps(), alice(), []int64{3}, 7, config.RoomPolicyMulti)

	require.Len(t, res.RoomOps(), 1)
	require.True(t, res.RoomOps()[0].IsJoin())
	require.Equal(t, int64(7), res.RoomOps()[0].GroupID())

	require.Len(t, res.Broadcasts(), 1)
	require.Equal(t, wire.EventUserJoined, res.Broadcasts()[0].Event())
}

func TestJoinGroup_InvalidGroupID(t *testing.T) {
	res := JoinGroup(testDeps(), alice(), nil, 0, config.RoomPolicyExclusive)
	require.Empty(t, res.RoomOps())
	require.Empty(t, res.Broadcasts())
}

func TestLeaveGroup_Member(t *testing.T) {
	res := LeaveGroup(testDeps(), alice(), []int64{7}, 7)

	require.Len(t, res.RoomOps(), 1)
	require.False(t, res.RoomOps()[0].IsJoin())

	require.Len(t, res.Broadcasts(), 1)
	b := res.Broadcasts()[0]
	require.Equal(t, wire.EventUserLeft, b.Event())
	require.True(t, b.SkipSelf())

	presence, ok := b.Payload().(wire.PresencePayload)
	require.True(t, ok)
	require.Equal(t, "Alice saiu do chat", presence.Message)
}

func TestLeaveGroup_NonMemberIsNoop(t *testing.T) {
	res := LeaveGroup(testDeps(), alice(), []int64{3}, 7)

	require.Empty(t, res.RoomOps())
	require.Empty(t, res.Broadcasts())
}

func TestDisconnect_LeavesEveryRoom(t *testing.T) {
	res := Disconnect(testDeps(), alice(), []int64{3, 7})

	require.Len(t, res.RoomOps(), 2)
	require.Len(t, res.Broadcasts(), 2)
	for _, b := range res.Broadcasts() {
		require.Equal(t, wire.EventUserLeft, b.Event())
		require.True(t, b.SkipSelf())
	}
}

func TestDisconnect_NoRoomsNoNotifications(t *testing.T) {
	res := Disconnect(testDeps(), alice(), nil)

	require.Empty(t, res.RoomOps())
	require.Empty(t, res.Broadcasts())
}

func TestMessageIngest_Valid(t *testing.T) {
	enqueue, res := MessageIngest(alice(), wire.MessagePayload{Content: "hello", GroupID: 7})

	require.NotNil(t, enqueue)
	require.Equal(t, "u1", enqueue.UserID())
	require.Equal(t, int64(7), enqueue.GroupID())
	require.Equal(t, "hello", enqueue.Content())
	require.Equal(t, "s1", enqueue.SocketID())
	require.Empty(t, res.Replies())
}

func TestMessageIngest_BlankContent(t *testing.T) {
	enqueue, res := MessageIngest(alice(), wire.MessagePayload{Content: "   ", GroupID: 7})

	require.Nil(t, enqueue)
	require.Len(t, res.Replies(), 1)
	require.Equal(t, wire.EventMessageError, res.Replies()[0].Event())
	require.Empty(t, res.Broadcasts())
}

func TestMessageIngest_MissingGroup(t *testing.T) {
	enqueue, res := MessageIngest(alice(), wire.MessagePayload{Content: "hello"})

	require.Nil(t, enqueue)
	require.Len(t, res.Replies(), 1)
	require.Equal(t, wire.EventMessageError, res.Replies()[0].Event())
}
