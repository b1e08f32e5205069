package services

import (
	"context"
	"strings"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
)

const defaultFeedLimit = 50

// PetService manages the adoptable-pet registry behind the registration
// wizard and the feed.
type PetService struct {
	pets repositories.PetRepository
}

// NewPetService creates a new PetService
func NewPetService(pets repositories.PetRepository) *PetService {
	return &PetService{pets: pets}
}

// Create registers a pet for the owner and returns it with its new id.
func (s *PetService) Create(ctx context.Context, ownerID string, in models.CreatePetRequest) (models.Pet, error) {
	if ownerID == "" {
		return models.Pet{}, apperrors.NewUnauthenticated()
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.Pet{}, apperrors.NewInvalidInput("pet name is required")
	}

	id, err := s.pets.Create(ctx, models.Pet{
		Name:        strings.TrimSpace(in.Name),
		Species:     in.Species,
		Breed:       strings.TrimSpace(in.Breed),
		AgeMonths:   in.AgeMonths,
		Size:        in.Size,
		Description: strings.TrimSpace(in.Description),
		ImageURLs:   in.ImageURLs,
		OwnerID:     ownerID,
	})
	if err != nil {
		return models.Pet{}, asInfrastructure("pet persist", err)
	}

	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return models.Pet{}, asInfrastructure("pet readback", err)
	}
	return pet, nil
}

func (s *PetService) GetByID(ctx context.Context, id string) (models.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return models.Pet{}, asInfrastructure("pet lookup", err)
	}
	return pet, nil
}

func (s *PetService) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	pets, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, asInfrastructure("pet list", err)
	}
	return pets, nil
}

// Feed returns recent pets for the discovery screen.
func (s *PetService) Feed(ctx context.Context, limit int) ([]models.Pet, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	pets, err := s.pets.ListRecent(ctx, limit)
	if err != nil {
		return nil, asInfrastructure("pet feed", err)
	}
	return pets, nil
}

// Delete removes a pet. As with request deletion, ownership is the store's
// access rules' concern.
func (s *PetService) Delete(ctx context.Context, id string) error {
	if err := s.pets.Delete(ctx, id); err != nil {
		return asInfrastructure("pet delete", err)
	}
	return nil
}
