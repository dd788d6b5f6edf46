package domain

import "time"

// PipelineRun carries the working state of one question through the pipeline.
// TranslatedAnswer is always set before a run that reaches logging terminates.
type PipelineRun struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	LanguageCode       string    `json:"language_code"`
	Timezone           string    `json:"timezone"`
	Question           string    `json:"question"`
	TranslatedQuestion string    `json:"translated_question"`
	RAGAnswer          *string   `json:"rag_answer,omitempty"`
	TranslatedAnswer   string    `json:"translated_answer"`
	Intent             Intent    `json:"intent"`
	QuestionTime       time.Time `json:"question_time"`
	ReplyTime          time.Time `json:"reply_time"`
}

// ConsumedText is the concatenation of every text the language model produced
// or consumed after classification; it is the basis of the token estimate.
func (r PipelineRun) ConsumedText() string {
	answer := ""
	if r.RAGAnswer != nil {
		answer = *r.RAGAnswer
	}
	return r.TranslatedQuestion + answer + r.TranslatedAnswer
}
