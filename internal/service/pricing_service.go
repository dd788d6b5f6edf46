package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/repository"
)

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// PricingService resolves the LLM pricing for each accounting operation.
// With redis configured the resolved value is cached for ttl; Invalidate
// drops the cached entry so the next Load reads the config table again.
type PricingService struct {
	configs repository.ConfigRepository
	cache   redisKV
	ttl     time.Duration
	key     string
	logger  *zap.Logger
}

func NewPricingService(configs repository.ConfigRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *PricingService {
	s := &PricingService{
		configs: configs,
		ttl:     ttl,
		key:     "pricing:" + domain.PricingConfigKey,
		logger:  logger,
	}
	if client != nil && ttl > 0 {
		s.cache = client
	}
	return s
}

// Load never fails; every problem degrades to domain.DefaultPricing.
func (s *PricingService) Load(ctx context.Context) domain.PricingConfig {
	if s == nil {
		return domain.DefaultPricing()
	}
	if cfg, ok := s.fromCache(ctx); ok {
		return cfg
	}

	cfg, cacheable := s.fromStore(ctx)
	if cacheable && s.cache != nil {
		payload, _ := json.Marshal(cfg)
		rctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		if err := s.cache.Set(rctx, s.key, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("pricing cache write failed", zap.Error(err))
		}
	}
	return cfg
}

// Invalidate removes the cached pricing, if any.
func (s *PricingService) Invalidate(ctx context.Context) error {
	if s == nil || s.cache == nil {
		return nil
	}
	rctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.cache.Del(rctx, s.key).Err()
}

func (s *PricingService) fromCache(ctx context.Context) (domain.PricingConfig, bool) {
	if s.cache == nil {
		return domain.PricingConfig{}, false
	}
	rctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := s.cache.Get(rctx, s.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("pricing cache read failed", zap.Error(err))
		}
		return domain.PricingConfig{}, false
	}
	var cfg domain.PricingConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Warn("pricing cache entry unreadable", zap.Error(err))
		return domain.PricingConfig{}, false
	}
	return cfg, true
}

func (s *PricingService) fromStore(ctx context.Context) (domain.PricingConfig, bool) {
	if s.configs == nil {
		return domain.DefaultPricing(), false
	}
	raw, err := s.configs.GetValue(ctx, domain.PricingConfigKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DefaultPricing(), true
		}
		s.logger.Warn("pricing config lookup failed", zap.Error(err))
		return domain.DefaultPricing(), false
	}
	cfg, err := domain.ParsePricing(raw)
	if err != nil {
		s.logger.Warn("pricing config unparseable, using default", zap.Error(err))
	}
	return cfg, true
}
