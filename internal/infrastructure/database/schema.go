package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Note the absence of a uniqueness constraint on the chats participant pair:
// "one conversation per pair" is an advisory invariant enforced by the
// find-before-create access pattern, so two simultaneous creates can race.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		phone         TEXT,
		avatar        TEXT,
		role          TEXT NOT NULL DEFAULT 'user',
		is_banned     BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id              BIGSERIAL PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT,
		price           NUMERIC(12,2) NOT NULL,
		seller_id       BIGINT NOT NULL REFERENCES users(id),
		status          TEXT NOT NULL DEFAULT 'available',
		approval_status TEXT NOT NULL DEFAULT 'pending',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS chats (
		id              BIGSERIAL PRIMARY KEY,
		user_id1        BIGINT NOT NULL REFERENCES users(id),
		user_id2        BIGINT NOT NULL REFERENCES users(id),
		product_id      BIGINT REFERENCES products(id),
		last_message    TEXT,
		last_message_at TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         BIGSERIAL PRIMARY KEY,
		chat_id    BIGINT NOT NULL REFERENCES chats(id),
		sender_id  BIGINT NOT NULL REFERENCES users(id),
		text       TEXT,
		image      TEXT,
		is_read    BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chats_users ON chats(user_id1, user_id2)`,
	`CREATE INDEX IF NOT EXISTS idx_chats_last_message_at ON chats(last_message_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_id)`,
}

// Migrate applies the schema idempotently on startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}
