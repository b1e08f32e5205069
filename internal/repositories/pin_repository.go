package repositories

import (
	"context"
	"time"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

const collectionPins = "pins"

// PinRepository defines the interface for map pin data operations
type PinRepository interface {
	Create(ctx context.Context, pin models.MapPin) (string, error)
	GetByID(ctx context.Context, id string) (models.MapPin, error)
	CountCreatedSince(ctx context.Context, creatorID string, since time.Time) (int, error)
	ListActive(ctx context.Context) ([]models.MapPin, error)
	Report(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

// StorePinRepository implements PinRepository on the document store.
type StorePinRepository struct {
	store store.DocumentStore
}

// NewStorePinRepository creates a new StorePinRepository
func NewStorePinRepository(s store.DocumentStore) *StorePinRepository {
	return &StorePinRepository{store: s}
}

// Create persists a pin with server-assigned timestamps.
func (r *StorePinRepository) Create(ctx context.Context, pin models.MapPin) (string, error) {
	return r.store.Create(ctx, collectionPins, map[string]any{
		"category":    pin.Category,
		"animal":      pin.Animal,
		"trait":       pin.Trait,
		"description": pin.Description,
		"markerUrl":   pin.MarkerURL,
		"photoUrl":    pin.PhotoURL,
		"latitude":    pin.Latitude,
		"longitude":   pin.Longitude,
		"address":     pin.Address,
		"creatorId":   pin.CreatorID,
		"reportCount": pin.ReportCount,
		"isActive":    pin.IsActive,
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	})
}

func (r *StorePinRepository) GetByID(ctx context.Context, id string) (models.MapPin, error) {
	doc, err := r.store.Get(ctx, collectionPins, id)
	if err != nil {
		if err == store.ErrNotFound {
			return models.MapPin{}, apperrors.NewNotFound("Pin")
		}
		return models.MapPin{}, err
	}
	return decodePin(doc)
}

// CountCreatedSince counts pins created by the user at or after since. The
// daily-pin policy reads this with since = start of the current UTC day.
func (r *StorePinRepository) CountCreatedSince(ctx context.Context, creatorID string, since time.Time) (int, error) {
	docs, err := r.store.Query(ctx, collectionPins, []store.Filter{
		{Path: "creatorId", Op: "==", Value: creatorID},
		{Path: "createdAt", Op: ">=", Value: since},
	}, 0)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// ListActive returns all pins still visible on the map.
func (r *StorePinRepository) ListActive(ctx context.Context) ([]models.MapPin, error) {
	docs, err := r.store.Query(ctx, collectionPins, []store.Filter{
		{Path: "isActive", Op: "==", Value: true},
	}, 0)
	if err != nil {
		return nil, err
	}
	pins := make([]models.MapPin, 0, len(docs))
	for _, doc := range docs {
		pin, err := decodePin(doc)
		if err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

// Report increments the pin's report counter.
func (r *StorePinRepository) Report(ctx context.Context, id string) error {
	return r.store.Update(ctx, collectionPins, id, []store.FieldOp{
		{Path: "reportCount", Kind: store.FieldIncrement, Value: 1},
		{Path: "updatedAt", Kind: store.FieldServerTime},
	})
}

// Deactivate soft-deletes the pin from the map.
func (r *StorePinRepository) Deactivate(ctx context.Context, id string) error {
	return r.store.Update(ctx, collectionPins, id, []store.FieldOp{
		{Path: "isActive", Kind: store.FieldSet, Value: false},
		{Path: "updatedAt", Kind: store.FieldServerTime},
	})
}

func decodePin(doc store.Document) (models.MapPin, error) {
	creatorID := fieldString(doc.Fields, "creatorId")
	if creatorID == "" {
		return models.MapPin{}, apperrors.NewInvalidInput("malformed pin document " + doc.Key)
	}
	return models.MapPin{
		ID:          doc.Key,
		Category:    fieldString(doc.Fields, "category"),
		Animal:      fieldString(doc.Fields, "animal"),
		Trait:       fieldString(doc.Fields, "trait"),
		Description: fieldString(doc.Fields, "description"),
		MarkerURL:   fieldString(doc.Fields, "markerUrl"),
		PhotoURL:    fieldString(doc.Fields, "photoUrl"),
		Latitude:    fieldFloat(doc.Fields, "latitude"),
		Longitude:   fieldFloat(doc.Fields, "longitude"),
		Address:     fieldString(doc.Fields, "address"),
		CreatorID:   creatorID,
		ReportCount: fieldInt(doc.Fields, "reportCount"),
		IsActive:    fieldBool(doc.Fields, "isActive"),
		CreatedAt:   fieldTime(doc.Fields, "createdAt"),
		UpdatedAt:   fieldTime(doc.Fields, "updatedAt"),
	}, nil
}
