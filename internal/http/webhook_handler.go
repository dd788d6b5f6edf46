package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/service"
	"lottery-secretary/internal/telegram"
)

const (
	secretTokenHeader  = "X-Telegram-Bot-Api-Secret-Token"
	msgMissingRequired = "缺少必要訊息"
)

// PipelineRunner handles one inbound message end to end.
type PipelineRunner interface {
	Handle(ctx context.Context, msg domain.InboundMessage) (service.Outcome, error)
}

// UpdateGate filters redelivered updates.
type UpdateGate interface {
	FirstDelivery(ctx context.Context, updateID int64) bool
	Release(ctx context.Context, updateID int64)
}

type WebhookHandler struct {
	pipeline        PipelineRunner
	gate            UpdateGate
	secret          string
	defaultLanguage string
	logger          *zap.Logger
	now             func() time.Time
}

func NewWebhookHandler(pipeline PipelineRunner, gate UpdateGate, secret, defaultLanguage string, logger *zap.Logger) *WebhookHandler {
	if defaultLanguage == "" {
		defaultLanguage = "zh-TW"
	}
	return &WebhookHandler{
		pipeline:        pipeline,
		gate:            gate,
		secret:          secret,
		defaultLanguage: defaultLanguage,
		logger:          logger,
		now:             time.Now,
	}
}

// TelegramWebhook handles POST /telegram-bot.
func (h *WebhookHandler) TelegramWebhook(c *gin.Context) {
	if h.secret != "" {
		got := c.GetHeader(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "description": "invalid secret token"})
			return
		}
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "description": msgMissingRequired})
		return
	}
	msg, ok := h.inbound(update)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "description": msgMissingRequired})
		return
	}

	// The run outlives a client disconnect; Telegram retries on timeouts.
	ctx := context.WithoutCancel(c.Request.Context())

	if h.gate != nil && !h.gate.FirstDelivery(ctx, msg.UpdateID) {
		h.logger.Info("duplicate update ignored", zap.Int64("update_id", msg.UpdateID))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	outcome, err := h.pipeline.Handle(ctx, msg)
	if err != nil {
		if h.gate != nil {
			h.gate.Release(ctx, msg.UpdateID)
		}
		h.logger.Error("pipeline failed",
			zap.Error(err),
			zap.Int64("update_id", msg.UpdateID),
			zap.String("username", msg.Username),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}

	h.logger.Debug("update handled", zap.Int64("update_id", msg.UpdateID), zap.String("outcome", string(outcome)))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) inbound(update telegram.Update) (domain.InboundMessage, bool) {
	m := update.Message
	if m == nil || m.From == nil {
		return domain.InboundMessage{}, false
	}
	username := strings.TrimSpace(m.From.Username)
	if username == "" || m.Chat.ID == 0 || strings.TrimSpace(m.Text) == "" {
		return domain.InboundMessage{}, false
	}

	lang := strings.TrimSpace(m.From.LanguageCode)
	if lang == "" {
		lang = h.defaultLanguage
	}
	receivedAt := h.now().UTC()
	if m.Date > 0 {
		receivedAt = time.Unix(m.Date, 0).UTC()
	}
	return domain.InboundMessage{
		UpdateID:     update.UpdateID,
		Username:     username,
		LanguageCode: lang,
		ChatID:       m.Chat.ID,
		Text:         m.Text,
		ReceivedAt:   receivedAt,
	}, true
}
