package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cacheport "go-marketplace/internal/infrastructure/cache/port"
	repository "go-marketplace/internal/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const displayCacheTTL = 5 * time.Minute

// PgUserRepository resolves user display data from Postgres with a cache in
// front. Cache failures degrade to a direct DB read, never to a request error.
type PgUserRepository struct {
	pool  *pgxpool.Pool
	cache cacheport.Cache
}

// NewPgUserRepository constructs the repository. cache may be nil, in which
// case every lookup hits the database.
func NewPgUserRepository(pool *pgxpool.Pool, cache cacheport.Cache) *PgUserRepository {
	return &PgUserRepository{pool: pool, cache: cache}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) FindDisplay(ctx context.Context, userID int64) (*repository.UserDisplay, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}

	key := displayCacheKey(userID)
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, key); err == nil {
			var d repository.UserDisplay
			if json.Unmarshal([]byte(raw), &d) == nil {
				return &d, nil
			}
		}
	}

	var d repository.UserDisplay
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, avatar FROM users WHERE id = $1`, userID,
	).Scan(&d.ID, &d.Name, &d.Avatar)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(d); err == nil {
			_ = r.cache.Set(ctx, key, string(raw), displayCacheTTL)
		}
	}
	return &d, nil
}

func displayCacheKey(userID int64) string {
	return fmt.Sprintf("user:display:%d", userID)
}
