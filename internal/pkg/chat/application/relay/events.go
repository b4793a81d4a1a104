package relay

import (
	"encoding/json"
	"time"

	chat "go-marketplace/internal/pkg/chat/application/domain"
)

// Inbound event names.
const (
	EventJoinChat    = "join_chat"
	EventSendMessage = "send_message"
	EventMarkAsRead  = "mark_as_read"
	EventTyping      = "typing"
	EventStopTyping  = "stop_typing"
)

// Outbound event names.
const (
	EventNewMessage     = "new_message"
	EventMessagesRead   = "messages_read"
	EventUserTyping     = "user_typing"
	EventUserStopTyping = "user_stop_typing"
	EventError          = "error"
)

// Envelope is the wire frame for both directions: an event name plus its
// payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinChatEvent struct {
	ChatID int64 `json:"chatId"`
}

type SendMessageEvent struct {
	ChatID   int64   `json:"chatId"`
	SenderID int64   `json:"senderId"`
	Text     *string `json:"text,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type MarkAsReadEvent struct {
	ChatID int64 `json:"chatId"`
	UserID int64 `json:"userId"`
}

type TypingEvent struct {
	ChatID   int64  `json:"chatId"`
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

type StopTypingEvent struct {
	ChatID int64 `json:"chatId"`
	UserID int64 `json:"userId"`
}

// MessagePayload is the full persisted message row as delivered to clients.
type MessagePayload struct {
	ID           int64     `json:"id"`
	ChatID       int64     `json:"chatId"`
	SenderID     int64     `json:"senderId"`
	Text         *string   `json:"text"`
	Image        *string   `json:"image"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
	SenderName   string    `json:"senderName"`
	SenderAvatar *string   `json:"senderAvatar"`
}

type MessagesReadPayload struct {
	ChatID int64 `json:"chatId"`
	UserID int64 `json:"userId"`
}

type UserTypingPayload struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

type UserStopTypingPayload struct {
	UserID int64 `json:"userId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// ToMessagePayload maps a persisted domain message to its wire shape.
func ToMessagePayload(m chat.Message) MessagePayload {
	return MessagePayload{
		ID:           m.ID,
		ChatID:       m.ChatID,
		SenderID:     m.SenderID,
		Text:         m.Text,
		Image:        m.Image,
		IsRead:       m.IsRead,
		CreatedAt:    m.CreatedAt,
		SenderName:   m.SenderName,
		SenderAvatar: m.SenderAvatar,
	}
}

// Marshal encodes an outbound envelope for fan-out or direct delivery.
func Marshal(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
