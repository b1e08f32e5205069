package services

import (
	"context"
	"testing"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

func newTestGuard(t *testing.T, now time.Time) (*Guard, *store.MemoryStore) {
	t.Helper()
	ms := store.NewMemoryStore()
	ms.Now = func() time.Time { return now }
	g := NewGuard(nil, repositories.NewStoreCounterRepository(ms, "requestLimits"))
	g.now = func() time.Time { return now }
	return g, ms
}

func TestGuard_NoCounterAllows(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	g, _ := newTestGuard(t, now)

	dec, err := g.CheckDailyLimit(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !dec.Allowed || dec.CurrentCount != 0 || dec.IsNewDay {
		t.Fatalf("unexpected decision: %+v", dec)
	}
	if !dec.StartsFresh() {
		t.Fatal("first submission of a user must start a fresh counter")
	}
}

func TestGuard_DailyCapBlocksSixth(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	g, _ := newTestGuard(t, now)

	for i := 0; i < 5; i++ {
		dec, err := g.CheckDailyLimit(ctx, "u2", 5)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !dec.Allowed {
			t.Fatalf("submission %d unexpectedly blocked", i+1)
		}
		if err := g.RecordSubmission(ctx, "u2", dec.StartsFresh()); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	dec, err := g.CheckDailyLimit(ctx, "u2", 5)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec.Allowed {
		t.Fatal("sixth submission of the day must be blocked")
	}
	if dec.CurrentCount != 5 {
		t.Fatalf("expected count 5, got %d", dec.CurrentCount)
	}
}

func TestGuard_StaleCounterResetsOnNewDay(t *testing.T) {
	ctx := context.Background()
	yesterday := time.Date(2026, 3, 13, 23, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)

	ms := store.NewMemoryStore()
	ms.Now = func() time.Time { return yesterday }
	counters := repositories.NewStoreCounterRepository(ms, "requestLimits")
	g := NewGuard(nil, counters)
	g.now = func() time.Time { return yesterday }

	// Max out yesterday's counter.
	if err := counters.Start(ctx, "u3"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := counters.Increment(ctx, "u3"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	// Roll the clock over midnight UTC.
	ms.Now = func() time.Time { return today }
	g.now = func() time.Time { return today }

	dec, err := g.CheckDailyLimit(ctx, "u3", 5)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !dec.Allowed || !dec.IsNewDay || dec.CurrentCount != 0 {
		t.Fatalf("stale counter must read as zero: %+v", dec)
	}

	if err := g.RecordSubmission(ctx, "u3", dec.StartsFresh()); err != nil {
		t.Fatalf("record: %v", err)
	}
	counter, exists, err := counters.Get(ctx, "u3")
	if err != nil || !exists {
		t.Fatalf("get counter: exists=%v err=%v", exists, err)
	}
	if counter.Count != 1 {
		t.Fatalf("expected reset to 1, got %d", counter.Count)
	}
	if !sameUTCDay(counter.LastUpdate, today) {
		t.Fatalf("lastUpdate not refreshed: %v", counter.LastUpdate)
	}
}

func TestSameUTCDay(t *testing.T) {
	base := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	if !sameUTCDay(base, base.Add(-23*time.Hour)) {
		t.Fatal("same UTC date must match regardless of hour")
	}
	if sameUTCDay(base, base.Add(time.Hour)) {
		t.Fatal("crossing midnight UTC is a new day")
	}

	// A local time east of UTC can be "tomorrow" locally while still today in UTC.
	east := time.FixedZone("UTC+5", 5*3600)
	if !sameUTCDay(base, base.In(east)) {
		t.Fatal("timezone of representation must not matter")
	}
}
