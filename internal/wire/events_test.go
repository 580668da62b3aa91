package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessagePayload_NumericGroupID(t *testing.T) {
	var p MessagePayload
	require.NoError(t, json.Unmarshal([]byte(`{"content":"oi","groupId":7}`), &p))
	require.Equal(t, GroupID(7), p.GroupID)
	require.Equal(t, "oi", p.Content)
}

func TestMessagePayload_StringGroupID(t *testing.T) {
	var p MessagePayload
	require.NoError(t, json.Unmarshal([]byte(`{"content":"oi","groupId":"7"}`), &p))
	require.Equal(t, GroupID(7), p.GroupID)
}

func TestMessagePayload_InvalidGroupID(t *testing.T) {
	var p MessagePayload
	require.Error(t, json.Unmarshal([]byte(`{"content":"oi","groupId":"sete"}`), &p))

	var q MessagePayload
	require.Error(t, json.Unmarshal([]byte(`{"content":"oi","groupId":true}`), &q))
}

func TestMessagePayload_LargeGroupIDKeepsPrecision(t *testing.T) {
	// json.Number avoids the float64 round-trip that would mangle ids
	// beyond 2^53.
	var p MessagePayload
	require.NoError(t, json.Unmarshal([]byte(`{"groupId":9007199254740993}`), &p))
	require.Equal(t, GroupID(9007199254740993), p.GroupID)
}

func TestCoerceGroupID(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input any
		want  int64
		ok    bool
	}{
		{"int64", int64(7), 7, true},
		{"int", 7, 7, true},
		{"float64", float64(7), 7, true},
		{"json number", json.Number("7"), 7, true},
		{"numeric string", "7", 7, true},
		{"word string", "sete", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CoerceGroupID(tc.input)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNewJoinedPresence(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewJoinedPresence("u1", "Alice", at)

	require.Equal(t, "joined-1748779200000-u1", p.ID)
	require.Equal(t, "u1", p.UserID)
	require.Equal(t, "Alice", p.UserName)
	require.Equal(t, "Alice entrou no chat", p.Message)
	require.Equal(t, at.UnixMilli(), p.Timestamp)
	require.Equal(t, "2025-06-01T12:00:00Z", p.SendAt)
}

func TestNewLeftPresence(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewLeftPresence("u1", "Alice", at)

	require.Equal(t, "left-1748779200000-u1", p.ID)
	require.Equal(t, "Alice saiu do chat", p.Message)
}
