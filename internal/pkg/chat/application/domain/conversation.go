package chat

import "time"

// Conversation is a two-party thread, optionally scoped to a product listing.
// UserID1/UserID2 are stored as an ordered pair but lookups treat the pair as
// unordered; "at most one conversation per pair" is enforced by the
// find-before-create access pattern, not by a schema constraint.
type Conversation struct {
	ID            int64      `db:"id"`
	UserID1       int64      `db:"user_id1"`
	UserID2       int64      `db:"user_id2"`
	ProductID     *int64     `db:"product_id"`
	LastMessage   *string    `db:"last_message"`
	LastMessageAt *time.Time `db:"last_message_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

// HasParticipant tells whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID int64) bool {
	if c == nil {
		return false
	}
	return c.UserID1 == userID || c.UserID2 == userID
}

// Counterpart returns the other party relative to userID.
func (c *Conversation) Counterpart(userID int64) int64 {
	if c.UserID1 == userID {
		return c.UserID2
	}
	return c.UserID1
}

// ConversationSummary is a listing row annotated with the counterpart's
// display fields, the product title when the thread is product-scoped, and
// the caller's unread count.
type ConversationSummary struct {
	Conversation

	OtherUserID     int64   `db:"other_user_id"`
	OtherUserName   string  `db:"other_user_name"`
	OtherUserAvatar *string `db:"other_user_avatar"`
	ProductTitle    *string `db:"product_title"`
	UnreadCount     int     `db:"unread_count"`
}
