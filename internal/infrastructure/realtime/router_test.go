package realtime_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-marketplace/internal/infrastructure/realtime"
)

type fakeSession struct {
	id     string
	userID int64

	mu       sync.Mutex
	received [][]byte
}

func (s *fakeSession) SessionID() string { return s.id }
func (s *fakeSession) UserID() int64     { return s.userID }

func (s *fakeSession) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, payload)
	return nil
}

func (s *fakeSession) payloads() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.received))
	copy(out, s.received)
	return out
}

func TestJoinIsIdempotent(t *testing.T) {
	r := realtime.NewRouter()
	s := &fakeSession{id: "s1", userID: 7}

	r.Join(42, s)
	r.Join(42, s)

	require.Equal(t, 1, r.Members(42))

	r.Broadcast(42, []byte("hello"))
	assert.Len(t, s.payloads(), 1, "double join must not duplicate delivery")
}

func TestBroadcastIncludesEveryMember(t *testing.T) {
	r := realtime.NewRouter()
	s1 := &fakeSession{id: "s1", userID: 7}
	s2 := &fakeSession{id: "s2", userID: 9}

	r.Join(42, s1)
	r.Join(42, s2)

	r.Broadcast(42, []byte("msg"))

	assert.Len(t, s1.payloads(), 1)
	assert.Len(t, s2.payloads(), 1)
}

func TestBroadcastExceptSkipsOriginator(t *testing.T) {
	r := realtime.NewRouter()
	s1 := &fakeSession{id: "s1", userID: 7}
	s2 := &fakeSession{id: "s2", userID: 9}

	r.Join(42, s1)
	r.Join(42, s2)

	r.BroadcastExcept(42, []byte("typing"), "s1")

	assert.Empty(t, s1.payloads(), "originator must not see its own presence echo")
	assert.Len(t, s2.payloads(), 1)
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	r := realtime.NewRouter()
	r.Broadcast(99, []byte("msg"))
	assert.Equal(t, 0, r.Members(99))
}

func TestDetachAllRemovesFromEveryRoom(t *testing.T) {
	r := realtime.NewRouter()
	s1 := &fakeSession{id: "s1", userID: 7}
	s2 := &fakeSession{id: "s2", userID: 9}

	r.Join(1, s1)
	r.Join(2, s1)
	r.Join(2, s2)

	r.DetachAll("s1")

	require.Equal(t, 0, r.Members(1))
	require.Equal(t, 1, r.Members(2))

	r.Broadcast(2, []byte("msg"))
	assert.Empty(t, s1.payloads())
	assert.Len(t, s2.payloads(), 1)
}
