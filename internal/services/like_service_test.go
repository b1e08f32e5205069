package services

import (
	"context"
	"testing"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

type likeEnv struct {
	ms   *store.MemoryStore
	pets repositories.PetRepository
	svc  *LikeService
}

func newLikeEnv(t *testing.T) *likeEnv {
	t.Helper()
	ms := store.NewMemoryStore()
	ms.Now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return &likeEnv{
		ms:   ms,
		pets: repositories.NewStorePetRepository(ms),
		svc:  NewLikeService(repositories.NewStoreLikeRepository(ms, repositories.CollectionPets)),
	}
}

func (e *likeEnv) seedPost(t *testing.T) string {
	t.Helper()
	id, err := e.pets.Create(context.Background(), models.Pet{
		Name:    "Luna",
		Species: "dog",
		OwnerID: "owner1",
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return id
}

func (e *likeEnv) likesCount(t *testing.T, postID string) int {
	t.Helper()
	pet, err := e.pets.GetByID(context.Background(), postID)
	if err != nil {
		t.Fatalf("read post: %v", err)
	}
	return pet.LikesCount
}

func TestToggle_AddAndRemove(t *testing.T) {
	ctx := context.Background()
	env := newLikeEnv(t)
	postID := env.seedPost(t)

	// 0 -> 1
	applied, err := env.svc.Toggle(ctx, "u1", postID, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !applied {
		t.Fatal("add should report applied")
	}
	if n := env.likesCount(t, postID); n != 1 {
		t.Fatalf("expected 1 like, got %d", n)
	}
	liked, err := env.svc.IsLiked(ctx, "u1", postID)
	if err != nil || !liked {
		t.Fatalf("expected liked, got %v %v", liked, err)
	}

	// 1 -> 0, entry tombstoned
	applied, err = env.svc.Toggle(ctx, "u1", postID, true)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !applied {
		t.Fatal("remove should report applied")
	}
	if n := env.likesCount(t, postID); n != 0 {
		t.Fatalf("expected 0 likes, got %d", n)
	}
	liked, err = env.svc.IsLiked(ctx, "u1", postID)
	if err != nil || liked {
		t.Fatalf("expected not liked, got %v %v", liked, err)
	}
}

func TestToggle_TombstoneReadsAsNotLiked(t *testing.T) {
	ctx := context.Background()
	env := newLikeEnv(t)
	postID := env.seedPost(t)

	if _, err := env.svc.Toggle(ctx, "u1", postID, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := env.svc.Toggle(ctx, "u1", postID, true); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// The map key survives removal as an explicit null.
	doc, err := env.ms.Get(ctx, "userLikes", "u1")
	if err != nil {
		t.Fatalf("read like-map: %v", err)
	}
	likes, _ := doc.Fields["likes"].(map[string]any)
	v, present := likes[postID]
	if !present || v != nil {
		t.Fatalf("expected null tombstone for %s, got %v (present=%v)", postID, v, present)
	}

	ids, err := env.svc.LikedPostIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("liked ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("tombstoned entries must not surface, got %v", ids)
	}
}

func TestToggle_StaleRemovalIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newLikeEnv(t)
	postID := env.seedPost(t)

	// Client believes it likes the post; the store disagrees.
	applied, err := env.svc.Toggle(ctx, "u1", postID, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if applied {
		t.Fatal("stale removal must be a no-op")
	}
	if n := env.likesCount(t, postID); n != 0 {
		t.Fatalf("counter must be untouched, got %d", n)
	}
	if _, err := env.ms.Get(ctx, "userLikes", "u1"); err != store.ErrNotFound {
		t.Fatalf("like-map must not be created by a no-op, got %v", err)
	}
}

func TestToggle_CountsAcrossUsers(t *testing.T) {
	ctx := context.Background()
	env := newLikeEnv(t)
	postID := env.seedPost(t)

	for i, uid := range []string{"a", "b", "c"} {
		if _, err := env.svc.Toggle(ctx, uid, postID, false); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	if n := env.likesCount(t, postID); n != 3 {
		t.Fatalf("expected 3 likes, got %d", n)
	}

	if _, err := env.svc.Toggle(ctx, "b", postID, true); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n := env.likesCount(t, postID); n != 2 {
		t.Fatalf("expected 2 likes, got %d", n)
	}
	for uid, want := range map[string]bool{"a": true, "b": false, "c": true} {
		got, err := env.svc.IsLiked(ctx, uid, postID)
		if err != nil {
			t.Fatalf("isLiked %s: %v", uid, err)
		}
		if got != want {
			t.Fatalf("user %s: expected liked=%v, got %v", uid, want, got)
		}
	}
}

func TestToggle_MissingPostLeavesMapUntouched(t *testing.T) {
	ctx := context.Background()
	env := newLikeEnv(t)

	// The counter update targets a post that does not exist, so the whole
	// batch fails and the like-map entry must not appear either.
	if _, err := env.svc.Toggle(ctx, "u1", "ghost", false); err == nil {
		t.Fatal("expected an error for a missing post")
	}
	if _, err := env.ms.Get(ctx, "userLikes", "u1"); err != store.ErrNotFound {
		t.Fatalf("partial batch applied: %v", err)
	}
}

func TestToggle_RequiresAuthenticatedUser(t *testing.T) {
	env := newLikeEnv(t)
	if _, err := env.svc.Toggle(context.Background(), "", "p1", false); err == nil {
		t.Fatal("expected an authentication error")
	}
}
