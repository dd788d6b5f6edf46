package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WhitelistRepository answers access questions against the whitelist table.
type WhitelistRepository interface {
	Count(ctx context.Context) (int64, error)
	Contains(ctx context.Context, username string) (bool, error)
}

type PgWhitelistRepository struct {
	pool *pgxpool.Pool
}

func NewPgWhitelistRepository(pool *pgxpool.Pool) *PgWhitelistRepository {
	return &PgWhitelistRepository{pool: pool}
}

func (r *PgWhitelistRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT count(id) FROM whitelist WHERE id > 0`
	var n int64
	err := QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query).Scan(&n)
	return n, err
}

func (r *PgWhitelistRepository) Contains(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM whitelist WHERE username = $1)`
	var ok bool
	err := QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, strings.TrimSpace(username)).Scan(&ok)
	return ok, err
}
