package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
)

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"台灣大樂透", 2},
		{"😀😀", 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EstimateTokens(tc.in), "input %q", tc.in)
	}
}

func TestEstimateTokens_MonotonicInPrefix(t *testing.T) {
	s := "台灣大樂透 today numbers? 威力彩 😀 done"
	runes := []rune(s)
	var prev int64
	for i := 0; i <= len(runes); i++ {
		got := EstimateTokens(string(runes[:i]))
		require.GreaterOrEqual(t, got, prev, "prefix %d", i)
		prev = got
	}
}

func answeredRun(username, question string, at time.Time) domain.PipelineRun {
	answer := "The numbers are 1, 2, 3."
	return domain.PipelineRun{
		ID:                 "run-" + question,
		Username:           username,
		LanguageCode:       "zh-TW",
		Timezone:           "Asia/Taipei",
		Question:           question,
		TranslatedQuestion: "What are the numbers for " + question,
		RAGAnswer:          &answer,
		TranslatedAnswer:   "號碼是 1、2、3。",
		Intent:             domain.IntentLottery,
		QuestionTime:       at,
		ReplyTime:          at.Add(time.Second),
	}
}

func TestUsageService_RecordAndAggregate(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	stats := newFakeStatisticRepo()
	tx := &recordingTx{}
	svc := NewUsageService(tx, users, actions, stats, staticPricing{cfg: domain.DefaultPricing()}, zap.NewNop())

	at := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	run := answeredRun("alice", "大樂透", at)
	require.NoError(t, svc.RecordAndAggregate(context.Background(), run))

	require.Equal(t, 1, tx.calls)
	got := actions.all()
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].UserID)
	require.Equal(t, run.TranslatedAnswer, got[0].TranslatedResponse)
	require.Equal(t, run.RAGAnswer, got[0].RAGResponse)
	require.Equal(t, domain.IntentLottery, got[0].Intent)

	stat, err := stats.GetByMonth(context.Background(), "2025-03")
	require.NoError(t, err)
	tokens := EstimateTokens(run.ConsumedText())
	require.Equal(t, int64(1), stat.TotalQueries)
	require.Equal(t, tokens, stat.TotalOpenAITokens)
	require.InDelta(t, float64(tokens)/1000*0.03, stat.TotalCost, 1e-12)
}

func TestUsageService_FreeQuotaAbsorbsSmallRuns(t *testing.T) {
	stats := newFakeStatisticRepo()
	svc := NewUsageService(nil, newFakeUserRepo(), &fakeActionRepo{}, stats,
		staticPricing{cfg: domain.PricingConfig{FreeQuota: 1e6, PricePerThousandTokens: 1}}, zap.NewNop())

	at := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.RecordAndAggregate(context.Background(), answeredRun("bob", "q", at)))

	stat, err := stats.GetByMonth(context.Background(), "2025-04")
	require.NoError(t, err)
	require.Zero(t, stat.TotalCost)
	require.Positive(t, stat.TotalOpenAITokens)
}

func TestUsageService_ConcurrentRunsAggregateAdditively(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	stats := newFakeStatisticRepo()
	svc := NewUsageService(nil, users, actions, stats, staticPricing{cfg: domain.DefaultPricing()}, zap.NewNop())

	const n = 40
	at := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	var (
		wg         sync.WaitGroup
		wantTokens int64
		wantCost   float64
	)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		run := answeredRun(fmt.Sprintf("user%d", i%3), strings.Repeat("樂", i+1), at.Add(time.Duration(i)*time.Minute))
		tokens := EstimateTokens(run.ConsumedText())
		wantTokens += tokens
		wantCost += domain.DefaultPricing().Cost(tokens)

		wg.Add(1)
		go func(run domain.PipelineRun) {
			defer wg.Done()
			errs <- svc.RecordAndAggregate(context.Background(), run)
		}(run)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stat, err := stats.GetByMonth(context.Background(), "2025-05")
	require.NoError(t, err)
	require.Equal(t, int64(n), stat.TotalQueries)
	require.Equal(t, wantTokens, stat.TotalOpenAITokens)
	require.InDelta(t, wantCost, stat.TotalCost, 1e-9)
	require.Len(t, users.byName, 3)
	require.Len(t, actions.all(), n)
}

func TestUsageService_MonthFollowsQuestionTime(t *testing.T) {
	stats := newFakeStatisticRepo()
	svc := NewUsageService(nil, newFakeUserRepo(), &fakeActionRepo{}, stats, nil, zap.NewNop())

	at := time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)
	run := answeredRun("carol", "q", at)
	run.ReplyTime = at.Add(2 * time.Minute)
	require.NoError(t, svc.RecordAndAggregate(context.Background(), run))

	_, err := stats.GetByMonth(context.Background(), "2025-01")
	require.NoError(t, err)
	_, err = stats.GetByMonth(context.Background(), "2025-02")
	require.Error(t, err)
}

func TestUsageService_Errors(t *testing.T) {
	at := time.Now()

	t.Run("user creation failure", func(t *testing.T) {
		users := newFakeUserRepo()
		users.err = errors.New("unique violation")
		actions := &fakeActionRepo{}
		svc := NewUsageService(nil, users, actions, newFakeStatisticRepo(), nil, zap.NewNop())

		err := svc.RecordAndAggregate(context.Background(), answeredRun("dave", "q", at))
		require.ErrorContains(t, err, "ensure user dave")
		require.Empty(t, actions.all())
	})

	t.Run("statistics failure", func(t *testing.T) {
		stats := newFakeStatisticRepo()
		stats.err = errors.New("deadlock")
		svc := NewUsageService(nil, newFakeUserRepo(), &fakeActionRepo{}, stats, nil, zap.NewNop())

		err := svc.RecordAndAggregate(context.Background(), answeredRun("erin", "q", at))
		require.ErrorContains(t, err, "update statistics")
	})

	t.Run("empty username", func(t *testing.T) {
		svc := NewUsageService(nil, newFakeUserRepo(), &fakeActionRepo{}, newFakeStatisticRepo(), nil, zap.NewNop())
		require.Error(t, svc.RecordAndAggregate(context.Background(), answeredRun("  ", "q", at)))
	})

	t.Run("not configured", func(t *testing.T) {
		var svc *UsageService
		require.ErrorIs(t, svc.RecordAndAggregate(context.Background(), answeredRun("x", "q", at)), ErrUsageServiceNotConfigured)
	})
}
