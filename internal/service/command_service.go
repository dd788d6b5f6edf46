package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/repository"
)

const (
	CommandHelp       = "/help"
	CommandStart      = "/start"
	CommandStatistics = "/statistics"
)

// CommandService answers slash commands without running the pipeline.
type CommandService struct {
	users   repository.UserRepository
	actions repository.ActionRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewCommandService(users repository.UserRepository, actions repository.ActionRepository, logger *zap.Logger) *CommandService {
	return &CommandService{users: users, actions: actions, logger: logger, now: time.Now}
}

// Reply returns the command's answer and true when text is a recognized command.
func (s *CommandService) Reply(ctx context.Context, username, text string) (string, bool) {
	switch {
	case strings.HasPrefix(text, CommandHelp):
		return MsgHelp, true
	case strings.HasPrefix(text, CommandStatistics):
		return s.statistics(ctx, username), true
	case strings.HasPrefix(text, CommandStart):
		return MsgWelcome, true
	}
	return "", false
}

func (s *CommandService) statistics(ctx context.Context, username string) string {
	if s.users == nil || s.actions == nil {
		return MsgStatisticsFailed
	}
	var monthly, total int64
	user, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		s.logger.Warn("statistics user lookup failed", zap.Error(err), zap.String("username", username))
		return MsgStatisticsFailed
	default:
		if monthly, err = s.actions.CountByUser(ctx, user.ID, domain.MonthStart(s.now())); err != nil {
			s.logger.Warn("statistics monthly count failed", zap.Error(err), zap.String("username", username))
			return MsgStatisticsFailed
		}
		if total, err = s.actions.CountByUser(ctx, user.ID, time.Time{}); err != nil {
			s.logger.Warn("statistics total count failed", zap.Error(err), zap.String("username", username))
			return MsgStatisticsFailed
		}
	}
	return fmt.Sprintf("您的使用統計資料：\n本月查詢次數：%d\n累計查詢次數：%d", monthly, total)
}
