package service

import (
	"context"
	"errors"
	"fmt"

	"lottery-secretary/internal/llm"
)

// ErrTranslation wraps every failure of the translation collaborator.
var ErrTranslation = errors.New("translation failed")

const (
	pivotSystemPrompt = "你是一個中文翻譯英文的助理。你會將內文整理成 AI 可閱讀的格式。"
	pivotUserTemplate = "請翻譯成英文：「%s」"

	userLangSystemPrompt = "你是一個翻譯助手兼任資料整理大師，你將資訊依照原本問題，整理出最適合原本問題的答案，並且翻譯成中文。"
	userLangUserTemplate = "請整理資訊：「%s」，原本問題是：「%s」。"
)

// TranslationService moves text between the user's language and the
// English pivot used by the knowledge base.
type TranslationService struct {
	llmClient llm.LLMClient
}

func NewTranslationService(llmClient llm.LLMClient) *TranslationService {
	return &TranslationService{llmClient: llmClient}
}

// ToPivotLanguage translates the user's question into English for retrieval.
func (s *TranslationService) ToPivotLanguage(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: pivotSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(pivotUserTemplate, text)},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
	})
}

// ToUserLanguage rewrites the retrieved answer so it addresses the original
// question, in the user's language.
func (s *TranslationService) ToUserLanguage(ctx context.Context, question, retrieved string) (string, error) {
	return s.complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: userLangSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(userLangUserTemplate, retrieved, question)},
		},
		Temperature: 0.3,
		MaxTokens:   2048,
	})
}

func (s *TranslationService) complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	if s == nil || s.llmClient == nil {
		return "", fmt.Errorf("%w: llm client not configured", ErrTranslation)
	}
	out, err := s.llmClient.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslation, err)
	}
	out = cleanCompletion(out)
	if out == "" {
		return "", fmt.Errorf("%w: %w", ErrTranslation, llm.ErrEmptyResponse)
	}
	return out, nil
}
