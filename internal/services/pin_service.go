package services

import (
	"context"
	"fmt"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/OyhamburoDev/luna-backend/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PinService creates and manages geotagged lost/found/sighted reports.
type PinService struct {
	pins    repositories.PinRepository
	uploads storage.Uploader
	now     func() time.Time
	pathID  func() string
}

// NewPinService creates a new PinService
func NewPinService(pins repositories.PinRepository, uploads storage.Uploader) *PinService {
	return &PinService{
		pins:    pins,
		uploads: uploads,
		now:     time.Now,
		pathID:  newPathID,
	}
}

// newPathID produces the identifier that namespaces a pin's storage paths.
// It is time-based with a random suffix and is not the pin's final key.
func newPathID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// CreatePinInput carries a validated pin submission with its two images:
// the generated circular marker and the unmodified photo.
type CreatePinInput struct {
	Category    string
	Animal      string
	Trait       string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	MarkerImage []byte
	Photo       []byte
}

// Create enforces the one-pin-per-UTC-day policy, uploads both images, then
// persists the pin. Both uploads must succeed before anything is written to
// the store, so an upload failure never leaves a partial pin document. A
// file uploaded before the other upload fails is orphaned, not cleaned up;
// paths are namespaced so an external sweep can reclaim them.
func (s *PinService) Create(ctx context.Context, userID string, in CreatePinInput) (models.MapPin, error) {
	if userID == "" {
		return models.MapPin{}, apperrors.NewUnauthenticated()
	}

	created, err := s.pins.CountCreatedSince(ctx, userID, startOfUTCDay(s.now()))
	if err != nil {
		return models.MapPin{}, asInfrastructure("daily pin check", err)
	}
	if created > 0 {
		return models.MapPin{}, apperrors.New(apperrors.ErrRateLimited,
			"Only one map pin may be created per day. Try again tomorrow.", nil)
	}

	base := fmt.Sprintf("pins/%s/%s", userID, s.pathID())

	var markerURL, photoURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.uploads.Upload(gctx, base+"/marker.png", in.MarkerImage, "image/png")
		markerURL = url
		return err
	})
	g.Go(func() error {
		url, err := s.uploads.Upload(gctx, base+"/photo.jpg", in.Photo, "image/jpeg")
		photoURL = url
		return err
	})
	if err := g.Wait(); err != nil {
		return models.MapPin{}, asInfrastructure("image upload", err)
	}

	id, err := s.pins.Create(ctx, models.MapPin{
		Category:    in.Category,
		Animal:      in.Animal,
		Trait:       in.Trait,
		Description: in.Description,
		MarkerURL:   markerURL,
		PhotoURL:    photoURL,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Address:     in.Address,
		CreatorID:   userID,
		ReportCount: 0,
		IsActive:    true,
	})
	if err != nil {
		return models.MapPin{}, asInfrastructure("pin persist", err)
	}

	pin, err := s.pins.GetByID(ctx, id)
	if err != nil {
		return models.MapPin{}, asInfrastructure("pin readback", err)
	}
	return pin, nil
}

// CreatedToday reports whether the user already created a pin this UTC day.
// The mobile shell reads this before opening the pin form.
func (s *PinService) CreatedToday(ctx context.Context, userID string) (bool, error) {
	created, err := s.pins.CountCreatedSince(ctx, userID, startOfUTCDay(s.now()))
	if err != nil {
		return false, asInfrastructure("daily pin check", err)
	}
	return created > 0, nil
}

// ListActive returns all pins currently visible on the map.
func (s *PinService) ListActive(ctx context.Context) ([]models.MapPin, error) {
	pins, err := s.pins.ListActive(ctx)
	if err != nil {
		return nil, asInfrastructure("pin list", err)
	}
	return pins, nil
}

// Report counts one user report against the pin.
func (s *PinService) Report(ctx context.Context, pinID string) error {
	if err := s.pins.Report(ctx, pinID); err != nil {
		return asInfrastructure("pin report", err)
	}
	return nil
}

// Deactivate soft-deletes a pin from the map.
func (s *PinService) Deactivate(ctx context.Context, pinID string) error {
	if err := s.pins.Deactivate(ctx, pinID); err != nil {
		return asInfrastructure("pin deactivate", err)
	}
	return nil
}
