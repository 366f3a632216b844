package engine

import (
	"context"
	"errors"
	"time"
)

// Store is the persistence boundary for challenges. Implementations own the
// persisted representation exclusively: Get and List hand out independent
// copies (missing due times backfilled), Save upserts by id and moves the
// "latest" pointer, and Delete repoints latest at the most recently inserted
// remaining record. Unreadable or corrupt underlying data is treated as an
// empty store, never surfaced as an error.
type Store interface {
	Save(ctx context.Context, ch *Challenge) error
	Get(ctx context.Context, id string) (*Challenge, error)
	List(ctx context.Context) ([]*Challenge, error)
	Delete(ctx context.Context, id string) error
	LatestID(ctx context.Context) (string, error)

	// Weekly plan-generation counters, keyed by ISO week.
	GenerationsUsed(ctx context.Context, weekKey string) (int, error)
	IncrementGenerations(ctx context.Context, weekKey string) error
}

// Generator turns a free-text goal into a raw 30-day plan. The call is a
// single bounded round trip; it is never retried automatically.
type Generator interface {
	GeneratePlan(ctx context.Context, goal string) (*RawPlan, error)
}

// Service wires the progression engine to a store and an optional plan
// generator. Time is injected through now so tests can pin the clock.
type Service struct {
	store Store
	gen   Generator
	now   func() time.Time
	tz    string
}

func NewService(store Store, gen Generator) *Service {
	tz := "UTC"
	if loc := time.Now().Location(); loc != nil {
		tz = loc.String()
	}
	return &Service{
		store: store,
		gen:   gen,
		now:   func() time.Time { return time.Now().UTC() },
		tz:    tz,
	}
}

// StartLocal creates and persists a locally synthesized challenge.
func (s *Service) StartLocal(ctx context.Context, goal string) (*Challenge, error) {
	ch := NewLocalChallenge(goal, s.now(), s.tz)
	if err := s.store.Save(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// StartFitness creates and persists the fixed fitness template challenge.
func (s *Service) StartFitness(ctx context.Context) (*Challenge, error) {
	ch := NewFitnessChallenge(s.now(), s.tz)
	if err := s.store.Save(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// GenerationQuota reports the allowance left for AI plan generation in the
// current ISO week.
func (s *Service) GenerationQuota(ctx context.Context) (Quota, error) {
	now := s.now()
	key := ISOWeekKey(now)
	used, err := s.store.GenerationsUsed(ctx, key)
	if err != nil {
		return Quota{}, err
	}
	return Quota{
		WeekKey: key,
		Used:    used,
		Limit:   WeeklyGenerationLimit,
		ResetAt: NextWeekStart(now),
	}, nil
}

// StartGenerated asks the generator for a plan, normalizes it, and persists
// the resulting challenge. The weekly quota is checked up front and counted
// only for successful generations.
func (s *Service) StartGenerated(ctx context.Context, goal string) (*Challenge, error) {
	if s.gen == nil {
		return nil, errors.New("no plan generator configured")
	}

	quota, err := s.GenerationQuota(ctx)
	if err != nil {
		return nil, err
	}
	if quota.Remaining() <= 0 {
		return nil, QuotaError{Limit: quota.Limit, ResetAt: quota.ResetAt}
	}

	plan, err := s.gen.GeneratePlan(ctx, goal)
	if err != nil {
		return nil, err
	}

	ch, err := NewChallengeFromPlan(plan.Title, goal, plan, s.now(), s.tz)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, ch); err != nil {
		return nil, err
	}
	if err := s.store.IncrementGenerations(ctx, quota.WeekKey); err != nil {
		return nil, err
	}
	return ch, nil
}

// Load fetches a challenge and runs a resolution pass against the current
// time. The record is persisted at the end of every pass.
func (s *Service) Load(ctx context.Context, id string) (*Challenge, error) {
	ch, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrNotFound
	}
	now := s.now()
	Advance(ch, now)
	ch.XP = ch.EarnedXP()
	ch.UpdatedAt = now
	if err := s.store.Save(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// LoadLatest loads the most recently touched challenge.
func (s *Service) LoadLatest(ctx context.Context) (*Challenge, error) {
	id, err := s.store.LatestID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrNotFound
	}
	return s.Load(ctx, id)
}

// Toggle applies a task-completion change and persists the result. A rejected
// edit (past day, unknown task) returns the challenge unchanged without
// touching the store.
func (s *Service) Toggle(ctx context.Context, id string, dayIndex int, taskID string, completed bool) (*Challenge, error) {
	ch, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrNotFound
	}
	now := s.now()
	if !ToggleTask(ch, dayIndex, taskID, completed, now) {
		return ch, nil
	}
	ch.XP = ch.EarnedXP()
	ch.UpdatedAt = now
	if err := s.store.Save(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *Service) List(ctx context.Context) ([]*Challenge, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
