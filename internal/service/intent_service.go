package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/llm"
)

const intentPromptTemplate = "判斷以下問題是否為查詢「台灣樂透」相關內容？請回覆 'lottery' 或 'unknown'。\n問題：%s"

// IntentService decides whether a question is about the Taiwan lottery.
type IntentService struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewIntentService(llmClient llm.LLMClient, logger *zap.Logger) *IntentService {
	return &IntentService{llmClient: llmClient, logger: logger}
}

// Classify never fails: any model or transport error yields IntentUnknown.
func (s *IntentService) Classify(ctx context.Context, text string) domain.Intent {
	if s == nil || s.llmClient == nil {
		return domain.IntentUnknown
	}
	raw, err := s.llmClient.Complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf(intentPromptTemplate, text)},
		},
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		s.logger.Warn("intent detection failed", zap.Error(err))
		return domain.IntentUnknown
	}
	return domain.ParseIntent(raw)
}
