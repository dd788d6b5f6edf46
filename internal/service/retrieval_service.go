package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrRetrieverNotConfigured is the one pipeline failure without a graceful reply.
var ErrRetrieverNotConfigured = errors.New("knowledge base binding is not configured")

// RAGSearcher is the retrieval backend.
type RAGSearcher interface {
	AISearch(ctx context.Context, name, query string) (string, error)
}

// RetrievalService looks answers up in the configured knowledge base.
type RetrievalService struct {
	searcher RAGSearcher
	ragName  string
	logger   *zap.Logger
}

func NewRetrievalService(searcher RAGSearcher, ragName string, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{searcher: searcher, ragName: strings.TrimSpace(ragName), logger: logger}
}

// Search returns the answer and whether one was found. Backend errors are
// logged and reported as not found; only a missing binding is an error.
func (s *RetrievalService) Search(ctx context.Context, query string) (string, bool, error) {
	if s == nil || s.searcher == nil || s.ragName == "" {
		return "", false, ErrRetrieverNotConfigured
	}
	answer, err := s.searcher.AISearch(ctx, s.ragName, query)
	if err != nil {
		s.logger.Warn("knowledge base search failed", zap.Error(err), zap.String("rag", s.ragName))
		return "", false, nil
	}
	if strings.TrimSpace(answer) == "" {
		return "", false, nil
	}
	return answer, true, nil
}
