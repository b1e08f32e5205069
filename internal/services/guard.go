// Package services holds the submission workflows and the rate-limit /
// duplicate guard they share.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
)

// DuplicateQuery reports whether the user already has a live entity for the
// given scope key (e.g. the target pet of an adoption request).
type DuplicateQuery interface {
	Exists(ctx context.Context, userID, scopeKey string) (bool, error)
}

// LimitDecision is the outcome of a daily-limit check.
type LimitDecision struct {
	Allowed      bool
	CurrentCount int
	IsNewDay     bool
	HasCounter   bool
}

// StartsFresh reports whether the next successful submission must start the
// counter at 1 rather than increment it.
func (d LimitDecision) StartsFresh() bool {
	return d.IsNewDay || !d.HasCounter
}

// Guard decides admission for a new rate-limited action instance. The
// duplicate check and the limit check are reads followed by writes with no
// isolation between them: two near-simultaneous submissions from the same
// user can both pass. That race is accepted; see DESIGN.md.
type Guard struct {
	duplicates DuplicateQuery
	counters   repositories.CounterRepository
	now        func() time.Time
}

// NewGuard creates a Guard. duplicates may be nil for action kinds without
// a duplicate scope.
func NewGuard(duplicates DuplicateQuery, counters repositories.CounterRepository) *Guard {
	return &Guard{
		duplicates: duplicates,
		counters:   counters,
		now:        time.Now,
	}
}

// CheckDuplicate reports whether a live entity already exists for
// (userID, scopeKey).
func (g *Guard) CheckDuplicate(ctx context.Context, userID, scopeKey string) (bool, error) {
	exists, err := g.duplicates.Exists(ctx, userID, scopeKey)
	if err != nil {
		return false, asInfrastructure("duplicate check", err)
	}
	return exists, nil
}

// CheckDailyLimit reads the user's counter and decides whether another
// submission is admitted today. A counter last updated on a prior UTC
// calendar day is stale and reads as zero.
func (g *Guard) CheckDailyLimit(ctx context.Context, userID string, maxPerDay int) (LimitDecision, error) {
	counter, exists, err := g.counters.Get(ctx, userID)
	if err != nil {
		return LimitDecision{}, asInfrastructure("daily limit check", err)
	}
	if !exists {
		return LimitDecision{Allowed: true}, nil
	}
	if !sameUTCDay(counter.LastUpdate, g.now()) {
		return LimitDecision{Allowed: true, IsNewDay: true, HasCounter: true}, nil
	}
	return LimitDecision{
		Allowed:      counter.Count < maxPerDay,
		CurrentCount: counter.Count,
		HasCounter:   true,
	}, nil
}

// RecordSubmission updates the counter after a successful submission. When
// fresh, the counter is written as count = 1 with a new server timestamp;
// otherwise it is atomically incremented.
func (g *Guard) RecordSubmission(ctx context.Context, userID string, fresh bool) error {
	var err error
	if fresh {
		err = g.counters.Start(ctx, userID)
	} else {
		err = g.counters.Increment(ctx, userID)
	}
	if err != nil {
		return asInfrastructure("counter update", err)
	}
	return nil
}

// sameUTCDay reports whether both times fall on the same UTC calendar day.
// UTC is the one canonical rollover for all of a user's devices.
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// startOfUTCDay returns midnight UTC of t's calendar day.
func startOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// asInfrastructure wraps store failures, leaving application errors intact.
func asInfrastructure(op string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewInfrastructure(op, err)
}
