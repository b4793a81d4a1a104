package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrMissingFields = errors.New("chat: chat_id and sender_id are required")
	ErrEmptyMessage  = errors.New("chat: empty message (no text or image)")
	ErrNotFound      = errors.New("chat: conversation not found")
)
