package service

import (
	"context"
	"fmt"

	"lottery-secretary/internal/repository"
)

// AccessService applies the whitelist. An empty whitelist admits everyone.
type AccessService struct {
	repo repository.WhitelistRepository
}

func NewAccessService(repo repository.WhitelistRepository) *AccessService {
	return &AccessService{repo: repo}
}

func (s *AccessService) Allowed(ctx context.Context, username string) (bool, error) {
	if s == nil || s.repo == nil {
		return true, nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count whitelist: %w", err)
	}
	if n == 0 {
		return true, nil
	}
	ok, err := s.repo.Contains(ctx, username)
	if err != nil {
		return false, fmt.Errorf("lookup whitelist: %w", err)
	}
	return ok, nil
}
