package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lottery-secretary/internal/domain"
)

// UserRepository is the persistence contract for Telegram users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	// CreateIfAbsent returns the id of the user row for user.TelegramUsername,
	// inserting it first when missing. Safe under concurrent first contact.
	CreateIfAbsent(ctx context.Context, user domain.User) (int64, error)
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `
		SELECT id, telegram_username, language, timezone, registered_at
		FROM users
		WHERE telegram_username = $1
	`
	var u domain.User
	err := QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.TelegramUsername,
		&u.Language,
		&u.Timezone,
		&u.RegisteredAt,
	)
	if err != nil {
		return domain.User{}, mapNoRows(err)
	}
	return u, nil
}

func (r *PgUserRepository) CreateIfAbsent(ctx context.Context, user domain.User) (int64, error) {
	const insert = `
		INSERT INTO users (telegram_username, language, timezone, registered_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_username) DO NOTHING
		RETURNING id
	`
	q := QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, insert,
		user.TelegramUsername,
		user.Language,
		user.Timezone,
		user.RegisteredAt,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// Row already existed, either from an earlier run or a concurrent one.
	existing, err := r.GetByUsername(ctx, user.TelegramUsername)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}
