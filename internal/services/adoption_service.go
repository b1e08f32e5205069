package services

import (
	"context"
	"log"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
)

// MaxDailyAdoptionRequests caps adoption submissions per user per UTC day.
const MaxDailyAdoptionRequests = 5

// AdoptionService orchestrates the adoption request workflow: duplicate
// check, daily limit check, persist, counter update.
type AdoptionService struct {
	requests      repositories.AdoptionRequestRepository
	pets          repositories.PetRepository
	notifications repositories.NotificationRepository
	guard         *Guard
}

// NewAdoptionService creates an AdoptionService. notifications may be nil;
// inbox entries are then skipped.
func NewAdoptionService(
	requests repositories.AdoptionRequestRepository,
	pets repositories.PetRepository,
	counters repositories.CounterRepository,
	notifications repositories.NotificationRepository,
) *AdoptionService {
	return &AdoptionService{
		requests:      requests,
		pets:          pets,
		notifications: notifications,
		guard:         NewGuard(requestDuplicateQuery{requests}, counters),
	}
}

type requestDuplicateQuery struct {
	requests repositories.AdoptionRequestRepository
}

func (q requestDuplicateQuery) Exists(ctx context.Context, userID, scopeKey string) (bool, error) {
	return q.requests.ExistsForApplicantAndPet(ctx, userID, scopeKey)
}

// SubmitReceipt confirms a successful submission. CounterWarning is set when
// the request persisted but the counter update failed afterwards; the
// submission still counts and the drift is tolerated, not rolled back.
type SubmitReceipt struct {
	RequestID      string
	CounterWarning error
}

// Submit runs the linear submission workflow. No writes happen on a
// duplicate or rate-limit rejection.
func (s *AdoptionService) Submit(ctx context.Context, applicantID, petID string, profile models.ApplicantProfile) (SubmitReceipt, error) {
	if applicantID == "" {
		return SubmitReceipt{}, apperrors.NewUnauthenticated()
	}

	duplicate, err := s.guard.CheckDuplicate(ctx, applicantID, petID)
	if err != nil {
		return SubmitReceipt{}, err
	}
	if duplicate {
		return SubmitReceipt{}, apperrors.NewDuplicateRequest(petID)
	}

	decision, err := s.guard.CheckDailyLimit(ctx, applicantID, MaxDailyAdoptionRequests)
	if err != nil {
		return SubmitReceipt{}, err
	}
	if !decision.Allowed {
		return SubmitReceipt{}, apperrors.NewRateLimited(decision.CurrentCount, MaxDailyAdoptionRequests)
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return SubmitReceipt{}, asInfrastructure("pet lookup", err)
	}

	id, err := s.requests.Create(ctx, models.AdoptionRequest{
		ApplicantID: applicantID,
		PetID:       petID,
		OwnerID:     pet.OwnerID,
		Status:      models.RequestStatusPending,
		Profile:     profile,
	})
	if err != nil {
		return SubmitReceipt{}, asInfrastructure("request persist", err)
	}

	receipt := SubmitReceipt{RequestID: id}
	if err := s.guard.RecordSubmission(ctx, applicantID, decision.StartsFresh()); err != nil {
		receipt.CounterWarning = err
	}

	s.notify(&models.Notification{
		Type:        models.NotificationRequestReceived,
		ActorID:     applicantID,
		RecipientID: pet.OwnerID,
		TargetID:    id,
		TargetType:  "request",
		Message:     profile.FullName + " wants to adopt " + pet.Name,
	})

	return receipt, nil
}

// ListOwnedRequests returns all requests targeting pets owned by ownerID.
func (s *AdoptionService) ListOwnedRequests(ctx context.Context, ownerID string) ([]models.AdoptionRequest, error) {
	if ownerID == "" {
		return nil, apperrors.NewUnauthenticated()
	}
	requests, err := s.requests.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, asInfrastructure("request list", err)
	}
	return requests, nil
}

// ListMyRequests returns the applicant's own requests.
func (s *AdoptionService) ListMyRequests(ctx context.Context, applicantID string) ([]models.AdoptionRequest, error) {
	if applicantID == "" {
		return nil, apperrors.NewUnauthenticated()
	}
	requests, err := s.requests.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, asInfrastructure("request list", err)
	}
	return requests, nil
}

// DeleteRequest removes a request by id. Ownership is enforced by the
// store's access rules, not here.
func (s *AdoptionService) DeleteRequest(ctx context.Context, requestID string) error {
	if err := s.requests.Delete(ctx, requestID); err != nil {
		return asInfrastructure("request delete", err)
	}
	return nil
}

// Resolve moves a pending request to approved or rejected and notifies the
// applicant.
func (s *AdoptionService) Resolve(ctx context.Context, requestID string, approved bool) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return asInfrastructure("request lookup", err)
	}

	status := models.RequestStatusRejected
	kind := models.NotificationRequestRejected
	message := "Your adoption request was declined"
	if approved {
		status = models.RequestStatusApproved
		kind = models.NotificationRequestApproved
		message = "Your adoption request was approved"
	}

	if err := s.requests.UpdateStatus(ctx, requestID, status); err != nil {
		return asInfrastructure("status update", err)
	}

	s.notify(&models.Notification{
		Type:        kind,
		ActorID:     req.OwnerID,
		RecipientID: req.ApplicantID,
		TargetID:    requestID,
		TargetType:  "request",
		Message:     message,
	})
	return nil
}

// notify writes an inbox entry, best effort. A failed notification never
// fails the workflow that produced it.
func (s *AdoptionService) notify(n *models.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.CreateNotification(n); err != nil {
		log.Printf("notification write failed (type=%s recipient=%s): %v", n.Type, n.RecipientID, err)
	}
}
