package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_GetAbsentReturnsNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "pets", "missing")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_CreateResolvesServerTimestamp(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	key, err := s.Create(context.Background(), "pins", map[string]any{
		"creatorId": "u1",
		"createdAt": ServerTimestamp,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	doc, err := s.Get(context.Background(), "pins", key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := doc.Fields["createdAt"]; got != now {
		t.Fatalf("expected server timestamp %v, got %v", now, got)
	}
}

func TestMemoryStore_UpdateIncrementAndNestedNull(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "pets", "p1", map[string]any{"likesCount": 10}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "userLikes", "u1", map[string]any{
		"likes": map[string]any{"p1": true},
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	err := s.Update(ctx, "pets", "p1", []FieldOp{
		{Path: "likesCount", Kind: FieldIncrement, Value: -1},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	err = s.Update(ctx, "userLikes", "u1", []FieldOp{
		{Path: "likes.p1", Kind: FieldSet, Value: nil},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	pet, _ := s.Get(ctx, "pets", "p1")
	if got := pet.Fields["likesCount"]; got != int64(9) {
		t.Fatalf("expected likesCount 9, got %v", got)
	}

	likes, _ := s.Get(ctx, "userLikes", "u1")
	likeMap := likes.Fields["likes"].(map[string]any)
	v, present := likeMap["p1"]
	if !present || v != nil {
		t.Fatalf("expected explicit null tombstone, got present=%v value=%v", present, v)
	}
}

func TestMemoryStore_UpdateMissingDocFails(t *testing.T) {
	s := NewMemoryStore()

	err := s.Update(context.Background(), "pets", "nope", []FieldOp{
		{Path: "likesCount", Kind: FieldIncrement, Value: 1},
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_MergeSetKeepsSiblingKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "userLikes", "u1", map[string]any{
		"likes": map[string]any{"p1": true},
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	err := s.ApplyBatch(ctx, []WriteOp{{
		Kind:       WriteSet,
		Collection: "userLikes",
		Key:        "u1",
		Merge:      true,
		Fields:     map[string]any{"likes": map[string]any{"p2": true}},
	}})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	doc, _ := s.Get(ctx, "userLikes", "u1")
	likeMap := doc.Fields["likes"].(map[string]any)
	if likeMap["p1"] != true || likeMap["p2"] != true {
		t.Fatalf("merge lost keys: %v", likeMap)
	}
}

func TestMemoryStore_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "pets", "p1", map[string]any{"likesCount": 5}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Second op targets a missing document, so the first must not apply.
	err := s.ApplyBatch(ctx, []WriteOp{
		{
			Kind:       WriteUpdate,
			Collection: "pets",
			Key:        "p1",
			Ops:        []FieldOp{{Path: "likesCount", Kind: FieldIncrement, Value: 1}},
		},
		{
			Kind:       WriteUpdate,
			Collection: "userLikes",
			Key:        "missing",
			Ops:        []FieldOp{{Path: "likes.p1", Kind: FieldSet, Value: true}},
		},
	})
	if err == nil {
		t.Fatal("expected batch to fail")
	}

	doc, _ := s.Get(ctx, "pets", "p1")
	if got := doc.Fields["likesCount"]; got != 5 {
		t.Fatalf("batch partially applied: likesCount = %v", got)
	}
}

func TestMemoryStore_QueryFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		creator string
		at      time.Time
	}{
		{"u1", day.Add(9 * time.Hour)},
		{"u1", day.Add(-2 * time.Hour)},
		{"u2", day.Add(10 * time.Hour)},
	}
	for _, p := range seed {
		if _, err := s.Create(ctx, "pins", map[string]any{
			"creatorId": p.creator,
			"createdAt": p.at,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	docs, err := s.Query(ctx, "pins", []Filter{
		{Path: "creatorId", Op: "==", Value: "u1"},
		{Path: "createdAt", Op: ">=", Value: day},
	}, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 match, got %d", len(docs))
	}
}
