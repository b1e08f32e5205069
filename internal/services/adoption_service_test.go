package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

type adoptionEnv struct {
	ms       *store.MemoryStore
	requests repositories.AdoptionRequestRepository
	counters repositories.CounterRepository
	pets     repositories.PetRepository
	svc      *AdoptionService
}

func newAdoptionEnv(t *testing.T, now time.Time) *adoptionEnv {
	t.Helper()
	ms := store.NewMemoryStore()
	ms.Now = func() time.Time { return now }

	env := &adoptionEnv{
		ms:       ms,
		requests: repositories.NewStoreAdoptionRequestRepository(ms),
		counters: repositories.NewStoreCounterRepository(ms, "requestLimits"),
		pets:     repositories.NewStorePetRepository(ms),
	}
	env.svc = NewAdoptionService(env.requests, env.pets, env.counters, nil)
	env.svc.guard.now = func() time.Time { return now }
	return env
}

func (e *adoptionEnv) setNow(now time.Time) {
	e.ms.Now = func() time.Time { return now }
	e.svc.guard.now = func() time.Time { return now }
}

func (e *adoptionEnv) seedPet(t *testing.T, name, ownerID string) string {
	t.Helper()
	id, err := e.pets.Create(context.Background(), models.Pet{
		Name:    name,
		Species: "dog",
		OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	return id
}

func testProfile() models.ApplicantProfile {
	return models.ApplicantProfile{
		FullName:   "Ana Torres",
		Phone:      "+54 11 5555 1234",
		Email:      "ana@example.com",
		Housing:    "house",
		HasYard:    true,
		Motivation: "We have wanted a dog for years and work from home.",
	}
}

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	env := newAdoptionEnv(t, now)
	petID := env.seedPet(t, "Luna", "owner1")

	receipt, err := env.svc.Submit(ctx, "u1", petID, testProfile())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.RequestID == "" {
		t.Fatal("expected a request id")
	}
	if receipt.CounterWarning != nil {
		t.Fatalf("unexpected counter warning: %v", receipt.CounterWarning)
	}

	req, err := env.requests.GetByID(ctx, receipt.RequestID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if req.Status != models.RequestStatusPending {
		t.Fatalf("expected pending, got %q", req.Status)
	}
	if req.OwnerID != "owner1" {
		t.Fatalf("owner not resolved from pet: %q", req.OwnerID)
	}
	if !req.SubmittedAt.Equal(now) {
		t.Fatalf("expected server timestamp %v, got %v", now, req.SubmittedAt)
	}
}

func TestSubmit_DuplicateIsRejectedWithoutWrites(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	env := newAdoptionEnv(t, now)
	petID := env.seedPet(t, "Luna", "owner1")

	if _, err := env.svc.Submit(ctx, "u1", petID, testProfile()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	env.setNow(now.Add(5 * time.Minute))
	_, err := env.svc.Submit(ctx, "u1", petID, testProfile())
	if !apperrors.IsCode(err, apperrors.ErrDuplicateRequest) {
		t.Fatalf("expected DUPLICATE_REQUEST, got %v", err)
	}

	// No second request and no counter movement.
	requests, err := env.requests.ListByApplicant(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	counter, _, err := env.counters.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if counter.Count != 1 {
		t.Fatalf("duplicate rejection must not touch the counter, count = %d", counter.Count)
	}
}

func TestSubmit_SixthSameDayIsRateLimited(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	env := newAdoptionEnv(t, now)

	for i := 0; i < 5; i++ {
		petID := env.seedPet(t, fmt.Sprintf("Pet%d", i), "owner1")
		if _, err := env.svc.Submit(ctx, "u2", petID, testProfile()); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}

	counter, _, err := env.counters.Get(ctx, "u2")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if counter.Count != 5 {
		t.Fatalf("expected count 5, got %d", counter.Count)
	}

	extra := env.seedPet(t, "Pet6", "owner1")
	_, err = env.svc.Submit(ctx, "u2", extra, testProfile())
	if !apperrors.IsCode(err, apperrors.ErrRateLimited) {
		t.Fatalf("expected RATE_LIMITED, got %v", err)
	}

	requests, _ := env.requests.ListByApplicant(ctx, "u2")
	if len(requests) != 5 {
		t.Fatalf("rate-limited submit must not persist, got %d requests", len(requests))
	}
}

func TestSubmit_NewDayResetsCounterToOne(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	env := newAdoptionEnv(t, day1)

	for i := 0; i < 5; i++ {
		petID := env.seedPet(t, fmt.Sprintf("Pet%d", i), "owner1")
		if _, err := env.svc.Submit(ctx, "u3", petID, testProfile()); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}

	env.setNow(day1.Add(24 * time.Hour))
	petID := env.seedPet(t, "Fresh", "owner1")
	if _, err := env.svc.Submit(ctx, "u3", petID, testProfile()); err != nil {
		t.Fatalf("submit after rollover: %v", err)
	}

	counter, _, err := env.counters.Get(ctx, "u3")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if counter.Count != 1 {
		t.Fatalf("expected counter reset to 1, got %d", counter.Count)
	}
}

func TestSubmit_RequiresAuthenticatedUser(t *testing.T) {
	env := newAdoptionEnv(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	petID := env.seedPet(t, "Luna", "owner1")

	_, err := env.svc.Submit(context.Background(), "", petID, testProfile())
	if !apperrors.IsCode(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}
}

// failingCounters breaks counter writes to exercise the tolerated-drift path.
type failingCounters struct {
	repositories.CounterRepository
}

func (f failingCounters) Start(ctx context.Context, userID string) error {
	return errors.New("counter backend down")
}

func (f failingCounters) Increment(ctx context.Context, userID string) error {
	return errors.New("counter backend down")
}

func TestSubmit_CounterFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	env := newAdoptionEnv(t, now)
	petID := env.seedPet(t, "Luna", "owner1")

	env.svc = NewAdoptionService(env.requests, env.pets, failingCounters{env.counters}, nil)
	env.svc.guard.now = func() time.Time { return now }

	receipt, err := env.svc.Submit(ctx, "u4", petID, testProfile())
	if err != nil {
		t.Fatalf("submission must survive a counter failure: %v", err)
	}
	if receipt.CounterWarning == nil {
		t.Fatal("expected a counter warning")
	}
	if _, err := env.requests.GetByID(ctx, receipt.RequestID); err != nil {
		t.Fatalf("request must be persisted: %v", err)
	}
}

func TestListOwnedRequests(t *testing.T) {
	ctx := context.Background()
	env := newAdoptionEnv(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	p1 := env.seedPet(t, "Luna", "owner1")
	p2 := env.seedPet(t, "Coco", "owner2")

	if _, err := env.svc.Submit(ctx, "u1", p1, testProfile()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.svc.Submit(ctx, "u1", p2, testProfile()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	owned, err := env.svc.ListOwnedRequests(ctx, "owner1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(owned) != 1 || owned[0].PetID != p1 {
		t.Fatalf("unexpected owner inbox: %+v", owned)
	}
}

func TestDeleteRequest_AllowsResubmission(t *testing.T) {
	ctx := context.Background()
	env := newAdoptionEnv(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	petID := env.seedPet(t, "Luna", "owner1")

	receipt, err := env.svc.Submit(ctx, "u1", petID, testProfile())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := env.svc.DeleteRequest(ctx, receipt.RequestID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The retracted request no longer blocks the pair.
	if _, err := env.svc.Submit(ctx, "u1", petID, testProfile()); err != nil {
		t.Fatalf("resubmit after retraction: %v", err)
	}
}

func TestResolve_UpdatesStatus(t *testing.T) {
	ctx := context.Background()
	env := newAdoptionEnv(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	petID := env.seedPet(t, "Luna", "owner1")

	receipt, err := env.svc.Submit(ctx, "u1", petID, testProfile())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := env.svc.Resolve(ctx, receipt.RequestID, true); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	req, err := env.requests.GetByID(ctx, receipt.RequestID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if req.Status != models.RequestStatusApproved {
		t.Fatalf("expected approved, got %q", req.Status)
	}
}
