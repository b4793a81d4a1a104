package realtime

import (
	"sync"

	"go-marketplace/internal/pkg/chat/application/relay"
)

// Router is the in-memory RoomBroadcaster adapter: it maps conversation ids to
// the set of live sessions subscribed to them. Membership is purely additive;
// a session leaves all its rooms only on disconnect (DetachAll). State is
// process-local and rebuilt by clients on reconnect.
type Router struct {
	mu           sync.RWMutex
	rooms        map[int64]map[string]relay.Session // chatID -> sessionID -> session
	sessionRooms map[string]map[int64]struct{}      // sessionID -> set of chatIDs
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		rooms:        make(map[int64]map[string]relay.Session),
		sessionRooms: make(map[string]map[int64]struct{}),
	}
}

var _ relay.RoomBroadcaster = (*Router)(nil)

// Join adds the session to the conversation room. Joining twice has the same
// effect as joining once.
func (r *Router) Join(chatID int64, s relay.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[chatID]
	if room == nil {
		room = make(map[string]relay.Session)
		r.rooms[chatID] = room
	}
	room[s.SessionID()] = s

	memberships := r.sessionRooms[s.SessionID()]
	if memberships == nil {
		memberships = make(map[int64]struct{})
		r.sessionRooms[s.SessionID()] = memberships
	}
	memberships[chatID] = struct{}{}
}

// Broadcast writes payload to every member of the conversation room,
// originator included. Delivery is fire-and-forget.
func (r *Router) Broadcast(chatID int64, payload []byte) {
	r.broadcast(chatID, payload, "")
}

// BroadcastExcept writes payload to every member except sessionID.
func (r *Router) BroadcastExcept(chatID int64, payload []byte, sessionID string) {
	r.broadcast(chatID, payload, sessionID)
}

func (r *Router) broadcast(chatID int64, payload []byte, exceptSessionID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for sid, s := range r.rooms[chatID] {
		if exceptSessionID != "" && sid == exceptSessionID {
			continue
		}
		_ = s.Send(payload)
	}
}

// DetachAll removes the session from every room it joined. Called on
// transport disconnect.
func (r *Router) DetachAll(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for chatID := range r.sessionRooms[sessionID] {
		room := r.rooms[chatID]
		delete(room, sessionID)
		if len(room) == 0 {
			delete(r.rooms, chatID)
		}
	}
	delete(r.sessionRooms, sessionID)
}

// Members reports how many sessions are currently in the room.
func (r *Router) Members(chatID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[chatID])
}
