package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"lottery-secretary/internal/domain"
)

// ActionRepository stores answered questions. Rows are never updated.
type ActionRepository interface {
	Create(ctx context.Context, action domain.Action) (int64, error)
	// CountByUser counts a user's actions asked at or after since; a zero since counts all.
	CountByUser(ctx context.Context, userID int64, since time.Time) (int64, error)
}

type PgActionRepository struct {
	pool *pgxpool.Pool
}

func NewPgActionRepository(pool *pgxpool.Pool) *PgActionRepository {
	return &PgActionRepository{pool: pool}
}

func (r *PgActionRepository) Create(ctx context.Context, action domain.Action) (int64, error) {
	const query = `
		INSERT INTO actions
			(user_id, original_question, translated_question, rag_response, translated_response, intent, asked_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var intent interface{}
	if action.Intent != "" {
		intent = string(action.Intent)
	}

	var id int64
	err := QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query,
		action.UserID,
		action.OriginalQuestion,
		action.TranslatedQuestion,
		action.RAGResponse,
		action.TranslatedResponse,
		intent,
		action.AskedAt,
		action.RespondedAt,
	).Scan(&id)
	return id, err
}

func (r *PgActionRepository) CountByUser(ctx context.Context, userID int64, since time.Time) (int64, error) {
	builder := sq.Select("count(*)").
		From("actions").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar)
	if !since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"asked_at": since})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	err = QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}
