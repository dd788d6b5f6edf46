package domain

import "time"

// Action is the append-only record of one answered question.
type Action struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	OriginalQuestion   string    `json:"original_question"`
	TranslatedQuestion string    `json:"translated_question"`
	RAGResponse        *string   `json:"rag_response,omitempty"`
	TranslatedResponse string    `json:"translated_response"`
	Intent             Intent    `json:"intent"`
	AskedAt            time.Time `json:"asked_at"`
	RespondedAt        time.Time `json:"responded_at"`
}
