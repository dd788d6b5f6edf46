package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfigRepository reads keyed configuration values.
type ConfigRepository interface {
	GetValue(ctx context.Context, key string) (string, error)
}

type PgConfigRepository struct {
	pool *pgxpool.Pool
}

func NewPgConfigRepository(pool *pgxpool.Pool) *PgConfigRepository {
	return &PgConfigRepository{pool: pool}
}

func (r *PgConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM config WHERE key = $1`
	var value string
	if err := QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, key).Scan(&value); err != nil {
		return "", mapNoRows(err)
	}
	return value, nil
}
