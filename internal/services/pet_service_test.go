package services

import (
	"context"
	"testing"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

func newPetService(t *testing.T) *PetService {
	t.Helper()
	ms := store.NewMemoryStore()
	ms.Now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return NewPetService(repositories.NewStorePetRepository(ms))
}

func testPetRequest() models.CreatePetRequest {
	return models.CreatePetRequest{
		Name:        "  Luna  ",
		Species:     "dog",
		Breed:       "mixed",
		AgeMonths:   18,
		Size:        "medium",
		Description: "Friendly and house-trained",
	}
}

func TestPetCreate_TrimsAndInitializesCounter(t *testing.T) {
	ctx := context.Background()
	svc := newPetService(t)

	pet, err := svc.Create(ctx, "owner1", testPetRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pet.Name != "Luna" {
		t.Fatalf("expected trimmed name, got %q", pet.Name)
	}
	if pet.LikesCount != 0 {
		t.Fatalf("expected zero likes, got %d", pet.LikesCount)
	}
	if pet.OwnerID != "owner1" {
		t.Fatalf("unexpected owner %q", pet.OwnerID)
	}
	if pet.CreatedAt.IsZero() {
		t.Fatal("expected a server-assigned timestamp")
	}
}

func TestPetCreate_RejectsBlankName(t *testing.T) {
	svc := newPetService(t)
	in := testPetRequest()
	in.Name = "   "
	_, err := svc.Create(context.Background(), "owner1", in)
	if !apperrors.IsCode(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestPetListByOwner(t *testing.T) {
	ctx := context.Background()
	svc := newPetService(t)

	if _, err := svc.Create(ctx, "owner1", testPetRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}
	in := testPetRequest()
	in.Name = "Coco"
	if _, err := svc.Create(ctx, "owner2", in); err != nil {
		t.Fatalf("create: %v", err)
	}

	pets, err := svc.ListByOwner(ctx, "owner1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pets) != 1 || pets[0].Name != "Luna" {
		t.Fatalf("unexpected owner list: %+v", pets)
	}
}

func TestPetFeed_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	svc := newPetService(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, "owner1", testPetRequest()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	pets, err := svc.Feed(ctx, 0)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(pets) != 3 {
		t.Fatalf("expected 3 pets, got %d", len(pets))
	}

	pets, err = svc.Feed(ctx, 2)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(pets) != 2 {
		t.Fatalf("expected limit 2, got %d", len(pets))
	}
}
