package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// LLMClient is the text-completion collaborator used by the classifier and
// the translator.
type LLMClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Message is one chat message sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest describes one completion call. An empty Model uses the client default.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// ErrEmptyResponse is returned when the provider answers without content.
var ErrEmptyResponse = errors.New("llm empty response")

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("llm http error: status=%d", e.StatusCode)
}
