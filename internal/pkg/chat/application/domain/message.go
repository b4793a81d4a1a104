package chat

import (
	"strings"
	"time"
)

// ImagePlaceholder is the summary snippet used for image-only messages.
const ImagePlaceholder = "[Imagem]"

// Message is an immutable log entry in a conversation. The serial ID is the
// ordering authority within a conversation; IsRead is the only mutable field
// and transitions one-way from false to true.
type Message struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	SenderID  int64     `db:"sender_id"`
	Text      *string   `db:"text"`
	Image     *string   `db:"image"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`

	// Joined from users at read time for immediate client echo.
	SenderName   string  `db:"sender_name"`
	SenderAvatar *string `db:"sender_avatar"`
}

// NewMessage validates and normalizes a message before persistence.
// Whitespace-only text counts as absent; at least one of text/image must remain.
func NewMessage(m Message) (*Message, error) {
	if m.ChatID == 0 || m.SenderID == 0 {
		return nil, ErrMissingFields
	}

	if m.Text != nil {
		trimmed := strings.TrimSpace(*m.Text)
		if trimmed == "" {
			m.Text = nil
		} else {
			m.Text = &trimmed
		}
	}
	if m.Image != nil && strings.TrimSpace(*m.Image) == "" {
		m.Image = nil
	}

	if m.Text == nil && m.Image == nil {
		return nil, ErrEmptyMessage
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	return &m, nil
}

// Summary returns the denormalized snippet stored on the conversation.
func (m *Message) Summary() string {
	if m.Text != nil {
		return *m.Text
	}
	return ImagePlaceholder
}
