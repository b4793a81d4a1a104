package relay

// Session is one live client connection to the relay. Send must not block the
// caller; delivery is fire-and-forget.
type Session interface {
	SessionID() string
	UserID() int64
	Send(payload []byte) error
}

// RoomBroadcaster is the fan-out capability the relay depends on. The default
// adapter is the in-memory realtime.Router, which is process-local; a shared
// pub/sub implementation can be injected for multi-instance deployments
// without touching the relay.
type RoomBroadcaster interface {
	// Join subscribes the session to the conversation room. Idempotent.
	Join(chatID int64, s Session)

	// Broadcast delivers payload to every session in the room, sender included.
	Broadcast(chatID int64, payload []byte)

	// BroadcastExcept delivers payload to every session in the room except the
	// one identified by sessionID.
	BroadcastExcept(chatID int64, payload []byte, sessionID string)

	// DetachAll removes the session from every room it joined.
	DetachAll(sessionID string)
}
