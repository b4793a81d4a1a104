package adapter

import (
	"context"
	"errors"
	"time"

	chat "go-marketplace/internal/pkg/chat/application/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultMessageLimit = 50

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// FindConversation matches the pair under either ordering, further scoped by
// product id when supplied. A miss returns (nil, nil).
func (r *PgChatRepository) FindConversation(ctx context.Context, userA, userB int64, productID *int64) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	query := `
		SELECT id, user_id1, user_id2, product_id, last_message, last_message_at, created_at
		FROM chats
		WHERE ((user_id1 = $1 AND user_id2 = $2) OR (user_id1 = $2 AND user_id2 = $1))`
	args := []any{userA, userB}
	if productID != nil {
		query += ` AND product_id = $3`
		args = append(args, *productID)
	}
	query += ` LIMIT 1`

	var c chat.Conversation
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.UserID1, &c.UserID2, &c.ProductID, &c.LastMessage, &c.LastMessageAt, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) CreateConversation(ctx context.Context, userA, userB int64, productID *int64) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chats (user_id1, user_id2, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userA, userB, productID, time.Now().UTC()).Scan(&id)
	return id, err
}

func (r *PgChatRepository) GetConversation(ctx context.Context, chatID int64) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id1, user_id2, product_id, last_message, last_message_at, created_at
		FROM chats
		WHERE id = $1
	`, chatID).Scan(&c.ID, &c.UserID1, &c.UserID2, &c.ProductID, &c.LastMessage, &c.LastMessageAt, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateSummary overwrites the denormalized last-message fields unconditionally.
func (r *PgChatRepository) UpdateSummary(ctx context.Context, chatID int64, lastMessage string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE chats SET last_message = $2, last_message_at = $3 WHERE id = $1
	`, chatID, lastMessage, at)
	return err
}

func (r *PgChatRepository) ListForUser(ctx context.Context, userID int64) ([]chat.ConversationSummary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT
			c.id, c.user_id1, c.user_id2, c.product_id, c.last_message, c.last_message_at, c.created_at,
			CASE WHEN c.user_id1 = $1 THEN c.user_id2 ELSE c.user_id1 END AS other_user_id,
			CASE WHEN c.user_id1 = $1 THEN u2.name ELSE u1.name END AS other_user_name,
			CASE WHEN c.user_id1 = $1 THEN u2.avatar ELSE u1.avatar END AS other_user_avatar,
			p.title AS product_title,
			(SELECT COUNT(*) FROM messages m
			 WHERE m.chat_id = c.id AND m.sender_id <> $1 AND m.is_read = false) AS unread_count
		FROM chats c
		LEFT JOIN users u1 ON c.user_id1 = u1.id
		LEFT JOIN users u2 ON c.user_id2 = u2.id
		LEFT JOIN products p ON c.product_id = p.id
		WHERE c.user_id1 = $1 OR c.user_id2 = $1
		ORDER BY c.last_message_at DESC NULLS LAST
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []chat.ConversationSummary
	for rows.Next() {
		var s chat.ConversationSummary
		if err := rows.Scan(
			&s.ID, &s.UserID1, &s.UserID2, &s.ProductID, &s.LastMessage, &s.LastMessageAt, &s.CreatedAt,
			&s.OtherUserID, &s.OtherUserName, &s.OtherUserAvatar, &s.ProductTitle, &s.UnreadCount,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteConversation cascades: messages first, then the conversation row.
// Statement-level atomicity only; a failure between the two leaves an empty
// conversation behind, which the caller reports as a failed delete.
func (r *PgChatRepository) DeleteConversation(ctx context.Context, chatID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE chat_id = $1`, chatID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	return err
}

func (r *PgChatRepository) AppendMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, text, image, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, m.ChatID, m.SenderID, m.Text, m.Image, m.CreatedAt).Scan(&id)
	if err != nil {
		return nil, err
	}

	// Read the row back joined with the sender's display fields so the relay
	// can echo the canonical persisted copy.
	var stored chat.Message
	err = r.pool.QueryRow(ctx, `
		SELECT m.id, m.chat_id, m.sender_id, m.text, m.image, m.is_read, m.created_at,
		       COALESCE(u.name, ''), u.avatar
		FROM messages m
		LEFT JOIN users u ON m.sender_id = u.id
		WHERE m.id = $1
	`, id).Scan(
		&stored.ID, &stored.ChatID, &stored.SenderID, &stored.Text, &stored.Image,
		&stored.IsRead, &stored.CreatedAt, &stored.SenderName, &stored.SenderAvatar,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, chatID int64, limit int, before int64) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	const baseQuery = `
		SELECT m.id, m.chat_id, m.sender_id, m.text, m.image, m.is_read, m.created_at,
		       COALESCE(u.name, ''), u.avatar
		FROM messages m
		LEFT JOIN users u ON m.sender_id = u.id
		WHERE m.chat_id = $1`

	var (
		rows pgx.Rows
		err  error
	)
	if before > 0 {
		rows, err = r.pool.Query(ctx, baseQuery+` AND m.id < $2 ORDER BY m.id DESC LIMIT $3`, chatID, before, limit)
	} else {
		rows, err = r.pool.Query(ctx, baseQuery+` ORDER BY m.id DESC LIMIT $2`, chatID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(
			&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.Image, &m.IsRead, &m.CreatedAt,
			&m.SenderName, &m.SenderAvatar,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	// Fetched newest-first for the LIMIT; callers always receive oldest->newest.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *PgChatRepository) MarkRead(ctx context.Context, chatID int64, readerID int64) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET is_read = true
		WHERE chat_id = $1 AND sender_id <> $2 AND is_read = false
	`, chatID, readerID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
