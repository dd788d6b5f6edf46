package service

import (
	"context"
	"sync"
	"time"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]domain.User
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: map[string]domain.User{}}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.User{}, r.err
	}
	u, ok := r.byName[username]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) CreateIfAbsent(_ context.Context, user domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	if u, ok := r.byName[user.TelegramUsername]; ok {
		return u.ID, nil
	}
	r.nextID++
	user.ID = r.nextID
	r.byName[user.TelegramUsername] = user
	return user.ID, nil
}

type fakeActionRepo struct {
	mu      sync.Mutex
	actions []domain.Action
	err     error
}

func (r *fakeActionRepo) Create(_ context.Context, action domain.Action) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	action.ID = int64(len(r.actions) + 1)
	r.actions = append(r.actions, action)
	return action.ID, nil
}

func (r *fakeActionRepo) CountByUser(_ context.Context, userID int64, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, a := range r.actions {
		if a.UserID == userID && !a.AskedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeActionRepo) all() []domain.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Action(nil), r.actions...)
}

type fakeStatisticRepo struct {
	mu      sync.Mutex
	byMonth map[string]domain.MonthlyStatistic
	err     error
}

func newFakeStatisticRepo() *fakeStatisticRepo {
	return &fakeStatisticRepo{byMonth: map[string]domain.MonthlyStatistic{}}
}

func (r *fakeStatisticRepo) Increment(_ context.Context, month string, cost float64, tokens int64, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	s := r.byMonth[month]
	s.Month = month
	s.TotalQueries++
	s.TotalCost += cost
	s.TotalOpenAITokens += tokens
	s.UpdatedAt = updatedAt
	r.byMonth[month] = s
	return nil
}

func (r *fakeStatisticRepo) GetByMonth(_ context.Context, month string) (domain.MonthlyStatistic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byMonth[month]
	if !ok {
		return domain.MonthlyStatistic{}, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeStatisticRepo) List(_ context.Context, _ int) ([]domain.MonthlyStatistic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.MonthlyStatistic, 0, len(r.byMonth))
	for _, s := range r.byMonth {
		out = append(out, s)
	}
	return out, nil
}

type fakeConfigRepo struct {
	values map[string]string
	err    error
	calls  int
}

func (r *fakeConfigRepo) GetValue(_ context.Context, key string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	v, ok := r.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

type fakeWhitelistRepo struct {
	names []string
	err   error
	calls int
}

func (r *fakeWhitelistRepo) Count(context.Context) (int64, error) {
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.names)), nil
}

func (r *fakeWhitelistRepo) Contains(_ context.Context, username string) (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	for _, n := range r.names {
		if n == username {
			return true, nil
		}
	}
	return false, nil
}

type staticPricing struct {
	cfg domain.PricingConfig
}

func (s staticPricing) Load(context.Context) domain.PricingConfig { return s.cfg }

type recordingTx struct {
	calls int
}

func (t *recordingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
