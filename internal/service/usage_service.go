package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/repository"
)

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PricingLoader resolves the pricing used to bill a run.
type PricingLoader interface {
	Load(ctx context.Context) domain.PricingConfig
}

type directRunner struct{}

func (directRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// EstimateTokens approximates model tokens as ceil(len/4), where len counts
// UTF-16 code units.
func EstimateTokens(text string) int64 {
	units := 0
	for _, r := range text {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}
	return int64((units + 3) / 4)
}

// UsageService persists answered runs and keeps the monthly aggregate.
type UsageService struct {
	tx      TxRunner
	users   repository.UserRepository
	actions repository.ActionRepository
	stats   repository.StatisticRepository
	pricing PricingLoader
	logger  *zap.Logger
	now     func() time.Time
}

func NewUsageService(
	tx TxRunner,
	users repository.UserRepository,
	actions repository.ActionRepository,
	stats repository.StatisticRepository,
	pricing PricingLoader,
	logger *zap.Logger,
) *UsageService {
	if tx == nil {
		tx = directRunner{}
	}
	return &UsageService{
		tx:      tx,
		users:   users,
		actions: actions,
		stats:   stats,
		pricing: pricing,
		logger:  logger,
		now:     time.Now,
	}
}

var ErrUsageServiceNotConfigured = errors.New("usage service not configured")

// RecordAndAggregate stores the run's action, creating its user on first
// contact, and adds the run's estimated cost to its month.
func (s *UsageService) RecordAndAggregate(ctx context.Context, run domain.PipelineRun) error {
	if s == nil || s.users == nil || s.actions == nil || s.stats == nil {
		return ErrUsageServiceNotConfigured
	}
	username := strings.TrimSpace(run.Username)
	if username == "" {
		return fmt.Errorf("record run %s: empty username", run.ID)
	}

	pricing := domain.DefaultPricing()
	if s.pricing != nil {
		pricing = s.pricing.Load(ctx)
	}
	tokens := EstimateTokens(run.ConsumedText())
	cost := pricing.Cost(tokens)
	month := domain.MonthKey(run.QuestionTime)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		userID, err := s.users.CreateIfAbsent(ctx, domain.User{
			TelegramUsername: username,
			Language:         run.LanguageCode,
			Timezone:         run.Timezone,
			RegisteredAt:     s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", username, err)
		}

		if _, err := s.actions.Create(ctx, domain.Action{
			UserID:             userID,
			OriginalQuestion:   run.Question,
			TranslatedQuestion: run.TranslatedQuestion,
			RAGResponse:        run.RAGAnswer,
			TranslatedResponse: run.TranslatedAnswer,
			Intent:             run.Intent,
			AskedAt:            run.QuestionTime,
			RespondedAt:        run.ReplyTime,
		}); err != nil {
			return fmt.Errorf("insert action: %w", err)
		}

		if err := s.stats.Increment(ctx, month, cost, tokens, s.now().UTC()); err != nil {
			return fmt.Errorf("update statistics %s: %w", month, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("usage recorded",
		zap.String("run_id", run.ID),
		zap.String("month", month),
		zap.Int64("tokens", tokens),
		zap.Float64("cost", cost),
	)
	return nil
}
