package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"lottery-secretary/internal/domain"
)

// StatisticRepository maintains the per-month usage aggregate.
type StatisticRepository interface {
	// Increment adds one query plus cost and tokens to month atomically.
	Increment(ctx context.Context, month string, cost float64, tokens int64, updatedAt time.Time) error
	GetByMonth(ctx context.Context, month string) (domain.MonthlyStatistic, error)
	List(ctx context.Context, limit int) ([]domain.MonthlyStatistic, error)
}

type PgStatisticRepository struct {
	pool *pgxpool.Pool
}

func NewPgStatisticRepository(pool *pgxpool.Pool) *PgStatisticRepository {
	return &PgStatisticRepository{pool: pool}
}

func (r *PgStatisticRepository) Increment(ctx context.Context, month string, cost float64, tokens int64, updatedAt time.Time) error {
	const query = `
		INSERT INTO statistics (month, total_queries, total_cost, total_openai_tokens, updated_at)
		VALUES ($1, 1, $2, $3, $4)
		ON CONFLICT (month)
		DO UPDATE SET
			total_queries = statistics.total_queries + 1,
			total_cost = statistics.total_cost + EXCLUDED.total_cost,
			total_openai_tokens = statistics.total_openai_tokens + EXCLUDED.total_openai_tokens,
			updated_at = EXCLUDED.updated_at
	`
	_, err := QuerierFromCtx(ctx, r.pool).Exec(ctx, query, month, cost, tokens, updatedAt)
	return err
}

func (r *PgStatisticRepository) GetByMonth(ctx context.Context, month string) (domain.MonthlyStatistic, error) {
	const query = `
		SELECT month, total_queries, total_cost, total_openai_tokens, updated_at
		FROM statistics
		WHERE month = $1
	`
	var s domain.MonthlyStatistic
	err := QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, month).Scan(
		&s.Month,
		&s.TotalQueries,
		&s.TotalCost,
		&s.TotalOpenAITokens,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.MonthlyStatistic{}, mapNoRows(err)
	}
	return s, nil
}

// List returns the newest months first. limit <= 0 means 12.
func (r *PgStatisticRepository) List(ctx context.Context, limit int) ([]domain.MonthlyStatistic, error) {
	if limit <= 0 {
		limit = 12
	}
	query, args, err := sq.Select("month", "total_queries", "total_cost", "total_openai_tokens", "updated_at").
		From("statistics").
		OrderBy("month DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.MonthlyStatistic{}
	for rows.Next() {
		var s domain.MonthlyStatistic
		if err := rows.Scan(
			&s.Month,
			&s.TotalQueries,
			&s.TotalCost,
			&s.TotalOpenAITokens,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
