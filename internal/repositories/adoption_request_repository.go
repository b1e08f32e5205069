package repositories

import (
	"context"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

const collectionAdoptionRequests = "adoptionRequests"

// AdoptionRequestRepository defines the interface for adoption request data operations
type AdoptionRequestRepository interface {
	Create(ctx context.Context, req models.AdoptionRequest) (string, error)
	GetByID(ctx context.Context, id string) (models.AdoptionRequest, error)
	ExistsForApplicantAndPet(ctx context.Context, applicantID, petID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.AdoptionRequest, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.AdoptionRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// StoreAdoptionRequestRepository implements AdoptionRequestRepository on the
// document store.
type StoreAdoptionRequestRepository struct {
	store store.DocumentStore
}

// NewStoreAdoptionRequestRepository creates a new StoreAdoptionRequestRepository
func NewStoreAdoptionRequestRepository(s store.DocumentStore) *StoreAdoptionRequestRepository {
	return &StoreAdoptionRequestRepository{store: s}
}

// Create persists a new request. The submission timestamp is assigned
// server-side.
func (r *StoreAdoptionRequestRepository) Create(ctx context.Context, req models.AdoptionRequest) (string, error) {
	return r.store.Create(ctx, collectionAdoptionRequests, map[string]any{
		"applicantId": req.ApplicantID,
		"petId":       req.PetID,
		"ownerId":     req.OwnerID,
		"status":      req.Status,
		"profile": map[string]any{
			"fullName":   req.Profile.FullName,
			"phone":      req.Profile.Phone,
			"email":      req.Profile.Email,
			"housing":    req.Profile.Housing,
			"hasYard":    req.Profile.HasYard,
			"otherPets":  req.Profile.OtherPets,
			"motivation": req.Profile.Motivation,
		},
		"submittedAt": store.ServerTimestamp,
	})
}

// GetByID retrieves a request by its key.
func (r *StoreAdoptionRequestRepository) GetByID(ctx context.Context, id string) (models.AdoptionRequest, error) {
	doc, err := r.store.Get(ctx, collectionAdoptionRequests, id)
	if err != nil {
		if err == store.ErrNotFound {
			return models.AdoptionRequest{}, apperrors.NewNotFound("Adoption request")
		}
		return models.AdoptionRequest{}, err
	}
	return decodeAdoptionRequest(doc)
}

// ExistsForApplicantAndPet reports whether the applicant already has a live
// request for the pet.
func (r *StoreAdoptionRequestRepository) ExistsForApplicantAndPet(ctx context.Context, applicantID, petID string) (bool, error) {
	docs, err := r.store.Query(ctx, collectionAdoptionRequests, []store.Filter{
		{Path: "applicantId", Op: "==", Value: applicantID},
		{Path: "petId", Op: "==", Value: petID},
	}, 1)
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// ListByOwner returns all requests targeting pets owned by ownerID, for the
// owner's inbox. No pagination; result sets are small.
func (r *StoreAdoptionRequestRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.AdoptionRequest, error) {
	return r.list(ctx, store.Filter{Path: "ownerId", Op: "==", Value: ownerID})
}

// ListByApplicant returns the applicant's own requests.
func (r *StoreAdoptionRequestRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.AdoptionRequest, error) {
	return r.list(ctx, store.Filter{Path: "applicantId", Op: "==", Value: applicantID})
}

func (r *StoreAdoptionRequestRepository) list(ctx context.Context, filter store.Filter) ([]models.AdoptionRequest, error) {
	docs, err := r.store.Query(ctx, collectionAdoptionRequests, []store.Filter{filter}, 0)
	if err != nil {
		return nil, err
	}
	requests := make([]models.AdoptionRequest, 0, len(docs))
	for _, doc := range docs {
		req, err := decodeAdoptionRequest(doc)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// UpdateStatus moves a request to approved or rejected.
func (r *StoreAdoptionRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.store.Update(ctx, collectionAdoptionRequests, id, []store.FieldOp{
		{Path: "status", Kind: store.FieldSet, Value: status},
	})
}

// Delete removes a request unconditionally. Ownership checks are the store's
// access rules' concern, not this layer's.
func (r *StoreAdoptionRequestRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, collectionAdoptionRequests, id)
}

func decodeAdoptionRequest(doc store.Document) (models.AdoptionRequest, error) {
	applicantID := fieldString(doc.Fields, "applicantId")
	petID := fieldString(doc.Fields, "petId")
	if applicantID == "" || petID == "" {
		return models.AdoptionRequest{}, apperrors.NewInvalidInput("malformed adoption request document " + doc.Key)
	}

	profile := fieldMap(doc.Fields, "profile")
	return models.AdoptionRequest{
		ID:          doc.Key,
		ApplicantID: applicantID,
		PetID:       petID,
		OwnerID:     fieldString(doc.Fields, "ownerId"),
		Status:      fieldString(doc.Fields, "status"),
		Profile: models.ApplicantProfile{
			FullName:   fieldString(profile, "fullName"),
			Phone:      fieldString(profile, "phone"),
			Email:      fieldString(profile, "email"),
			Housing:    fieldString(profile, "housing"),
			HasYard:    fieldBool(profile, "hasYard"),
			OtherPets:  fieldString(profile, "otherPets"),
			Motivation: fieldString(profile, "motivation"),
		},
		SubmittedAt: fieldTime(doc.Fields, "submittedAt"),
	}, nil
}
