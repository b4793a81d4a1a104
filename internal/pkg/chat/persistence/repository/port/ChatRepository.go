package repository

import (
	"context"
	"time"

	chat "go-marketplace/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for the chat domain.
//
// FindConversation returns (nil, nil) on miss: absence is not an error, the
// caller decides whether to create. UpdateSummary is deliberately a separate
// statement from AppendMessage; the two are never wrapped in a transaction, so
// a crash between them can leave the summary stale relative to the message
// log. The summary is a display hint, not a source of truth.
type ChatRepository interface {
	FindConversation(ctx context.Context, userA, userB int64, productID *int64) (*chat.Conversation, error)
	CreateConversation(ctx context.Context, userA, userB int64, productID *int64) (int64, error)
	GetConversation(ctx context.Context, chatID int64) (*chat.Conversation, error)
	UpdateSummary(ctx context.Context, chatID int64, lastMessage string, at time.Time) error
	ListForUser(ctx context.Context, userID int64) ([]chat.ConversationSummary, error)
	DeleteConversation(ctx context.Context, chatID int64) error

	// AppendMessage assigns the serial identity and returns the stored row
	// joined with the sender's display name/avatar for immediate echo.
	AppendMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// ListMessages returns up to limit messages in chronological order
	// (oldest first). before, when non-zero, is an exclusive upper bound on
	// message identity for backward pagination.
	ListMessages(ctx context.Context, chatID int64, limit int, before int64) ([]chat.Message, error)

	// MarkRead flips is_read for every unread message in the conversation not
	// sent by readerID and reports how many rows changed. Zero is a valid,
	// non-error outcome.
	MarkRead(ctx context.Context, chatID int64, readerID int64) (int64, error)
}
