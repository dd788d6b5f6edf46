package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
)

// Outcome names the terminal state a message reached.
type Outcome string

const (
	OutcomeDenied            Outcome = "denied"
	OutcomeCommand           Outcome = "command"
	OutcomeDeclined          Outcome = "declined"
	OutcomeTranslationFailed Outcome = "translation_failed"
	OutcomeNoData            Outcome = "no_data"
	OutcomeAnswered          Outcome = "answered"
)

type AccessChecker interface {
	Allowed(ctx context.Context, username string) (bool, error)
}

type CommandResponder interface {
	Reply(ctx context.Context, username, text string) (string, bool)
}

type IntentClassifier interface {
	Classify(ctx context.Context, text string) domain.Intent
}

type Translator interface {
	ToPivotLanguage(ctx context.Context, text string) (string, error)
	ToUserLanguage(ctx context.Context, question, retrieved string) (string, error)
}

type Retriever interface {
	Search(ctx context.Context, query string) (string, bool, error)
}

type UsageRecorder interface {
	RecordAndAggregate(ctx context.Context, run domain.PipelineRun) error
}

// Replier delivers the single reply of a run.
type Replier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// PipelineDeps bundles every collaborator of the Orchestrator.
type PipelineDeps struct {
	Access          AccessChecker
	Commands        CommandResponder
	Intent          IntentClassifier
	Translator      Translator
	Retriever       Retriever
	Usage           UsageRecorder
	Replier         Replier
	Logger          *zap.Logger
	DefaultLanguage string
	Timezone        string
	Now             func() time.Time
}

// Orchestrator drives one inbound message to exactly one reply.
type Orchestrator struct {
	deps PipelineDeps
}

func NewOrchestrator(deps PipelineDeps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.DefaultLanguage == "" {
		deps.DefaultLanguage = "zh-TW"
	}
	return &Orchestrator{deps: deps}
}

// Handle runs the pipeline for msg. The returned error is reserved for
// failures with no graceful reply: a whitelist lookup failure and a missing
// knowledge base binding. Everything else ends in a reply and a nil error.
func (o *Orchestrator) Handle(ctx context.Context, msg domain.InboundMessage) (Outcome, error) {
	d := o.deps
	logger := d.Logger.With(zap.String("username", msg.Username), zap.Int64("chat_id", msg.ChatID))

	if d.Access != nil {
		allowed, err := d.Access.Allowed(ctx, msg.Username)
		if err != nil {
			return "", fmt.Errorf("check whitelist: %w", err)
		}
		if !allowed {
			o.reply(ctx, logger, msg.ChatID, MsgNotWhitelisted)
			return OutcomeDenied, nil
		}
	}

	if d.Commands != nil {
		if text, ok := d.Commands.Reply(ctx, msg.Username, strings.TrimSpace(msg.Text)); ok {
			o.reply(ctx, logger, msg.ChatID, text)
			return OutcomeCommand, nil
		}
	}

	run := domain.PipelineRun{
		ID:           uuid.NewString(),
		Username:     msg.Username,
		LanguageCode: msg.LanguageCode,
		Timezone:     d.Timezone,
		Question:     msg.Text,
		QuestionTime: msg.ReceivedAt,
	}
	if run.LanguageCode == "" {
		run.LanguageCode = d.DefaultLanguage
	}
	if run.QuestionTime.IsZero() {
		run.QuestionTime = d.Now()
	}
	logger = logger.With(zap.String("run_id", run.ID))

	run.Intent = domain.IntentUnknown
	if d.Intent != nil {
		run.Intent = d.Intent.Classify(ctx, run.Question)
	}
	if !run.Intent.IsLottery() {
		o.reply(ctx, logger, msg.ChatID, MsgDecline)
		return OutcomeDeclined, nil
	}

	pivot, err := d.Translator.ToPivotLanguage(ctx, run.Question)
	if err != nil {
		logger.Warn("pivot translation failed", zap.Error(err))
		o.reply(ctx, logger, msg.ChatID, MsgTranslationFailed)
		return OutcomeTranslationFailed, nil
	}
	run.TranslatedQuestion = pivot

	answer, found, err := d.Retriever.Search(ctx, pivot)
	if err != nil {
		return "", fmt.Errorf("search knowledge base: %w", err)
	}
	if !found {
		o.reply(ctx, logger, msg.ChatID, MsgNoData)
		return OutcomeNoData, nil
	}
	run.RAGAnswer = &answer

	final, err := d.Translator.ToUserLanguage(ctx, run.Question, answer)
	if err != nil {
		logger.Warn("answer translation failed, replying with retrieved text", zap.Error(err))
		final = answer
	}
	run.TranslatedAnswer = final
	run.ReplyTime = d.Now()

	if d.Usage != nil {
		if err := d.Usage.RecordAndAggregate(ctx, run); err != nil {
			logger.Error("usage accounting failed", zap.Error(err))
		}
	}

	o.reply(ctx, logger, msg.ChatID, final)
	return OutcomeAnswered, nil
}

func (o *Orchestrator) reply(ctx context.Context, logger *zap.Logger, chatID int64, text string) {
	if o.deps.Replier == nil {
		logger.Warn("no replier configured, dropping reply")
		return
	}
	if err := o.deps.Replier.SendMessage(ctx, chatID, text); err != nil {
		logger.Error("send reply failed", zap.Error(err))
	}
}
