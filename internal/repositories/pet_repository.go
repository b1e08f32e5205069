package repositories

import (
	"context"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

// CollectionPets holds the adoptable pet documents; the like workflow
// mutates their likesCount field, so the name is shared with the like
// repository wiring.
const CollectionPets = "pets"

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	Create(ctx context.Context, pet models.Pet) (string, error)
	GetByID(ctx context.Context, id string) (models.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	ListRecent(ctx context.Context, limit int) ([]models.Pet, error)
	Delete(ctx context.Context, id string) error
}

// StorePetRepository implements PetRepository on the document store.
type StorePetRepository struct {
	store store.DocumentStore
}

// NewStorePetRepository creates a new StorePetRepository
func NewStorePetRepository(s store.DocumentStore) *StorePetRepository {
	return &StorePetRepository{store: s}
}

func (r *StorePetRepository) Create(ctx context.Context, pet models.Pet) (string, error) {
	images := make([]any, 0, len(pet.ImageURLs))
	for _, u := range pet.ImageURLs {
		images = append(images, u)
	}
	return r.store.Create(ctx, CollectionPets, map[string]any{
		"name":        pet.Name,
		"species":     pet.Species,
		"breed":       pet.Breed,
		"ageMonths":   pet.AgeMonths,
		"size":        pet.Size,
		"description": pet.Description,
		"imageUrls":   images,
		"ownerId":     pet.OwnerID,
		"likesCount":  0,
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	})
}

func (r *StorePetRepository) GetByID(ctx context.Context, id string) (models.Pet, error) {
	doc, err := r.store.Get(ctx, CollectionPets, id)
	if err != nil {
		if err == store.ErrNotFound {
			return models.Pet{}, apperrors.NewNotFound("Pet")
		}
		return models.Pet{}, err
	}
	return decodePet(doc)
}

func (r *StorePetRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	docs, err := r.store.Query(ctx, CollectionPets, []store.Filter{
		{Path: "ownerId", Op: "==", Value: ownerID},
	}, 0)
	if err != nil {
		return nil, err
	}
	return decodePets(docs)
}

func (r *StorePetRepository) ListRecent(ctx context.Context, limit int) ([]models.Pet, error) {
	docs, err := r.store.Query(ctx, CollectionPets, nil, limit)
	if err != nil {
		return nil, err
	}
	return decodePets(docs)
}

func (r *StorePetRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionPets, id)
}

func decodePets(docs []store.Document) ([]models.Pet, error) {
	pets := make([]models.Pet, 0, len(docs))
	for _, doc := range docs {
		pet, err := decodePet(doc)
		if err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

func decodePet(doc store.Document) (models.Pet, error) {
	ownerID := fieldString(doc.Fields, "ownerId")
	name := fieldString(doc.Fields, "name")
	if ownerID == "" || name == "" {
		return models.Pet{}, apperrors.NewInvalidInput("malformed pet document " + doc.Key)
	}
	return models.Pet{
		ID:          doc.Key,
		Name:        name,
		Species:     fieldString(doc.Fields, "species"),
		Breed:       fieldString(doc.Fields, "breed"),
		AgeMonths:   fieldInt(doc.Fields, "ageMonths"),
		Size:        fieldString(doc.Fields, "size"),
		Description: fieldString(doc.Fields, "description"),
		ImageURLs:   fieldStringSlice(doc.Fields, "imageUrls"),
		OwnerID:     ownerID,
		LikesCount:  fieldInt(doc.Fields, "likesCount"),
		CreatedAt:   fieldTime(doc.Fields, "createdAt"),
		UpdatedAt:   fieldTime(doc.Fields, "updatedAt"),
	}, nil
}
