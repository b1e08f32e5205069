package repositories

import (
	"context"

	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

// CounterRepository defines the interface for daily submission counters.
// Counters are keyed by user id, one collection per rate-limited action kind.
type CounterRepository interface {
	// Get returns the user's counter and whether one exists.
	Get(ctx context.Context, userID string) (models.DailyCounter, bool, error)
	// Start writes count = 1 with a fresh server timestamp, creating the
	// counter or resetting a stale one.
	Start(ctx context.Context, userID string) error
	// Increment adds 1 to an existing counter and refreshes its timestamp.
	Increment(ctx context.Context, userID string) error
}

// StoreCounterRepository implements CounterRepository on the document store.
type StoreCounterRepository struct {
	store      store.DocumentStore
	collection string
}

// NewStoreCounterRepository creates a counter repository over the named
// collection, e.g. "requestLimits".
func NewStoreCounterRepository(s store.DocumentStore, collection string) *StoreCounterRepository {
	return &StoreCounterRepository{store: s, collection: collection}
}

func (r *StoreCounterRepository) Get(ctx context.Context, userID string) (models.DailyCounter, bool, error) {
	doc, err := r.store.Get(ctx, r.collection, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return models.DailyCounter{}, false, nil
		}
		return models.DailyCounter{}, false, err
	}
	return models.DailyCounter{
		UserID:     userID,
		Count:      fieldInt(doc.Fields, "count"),
		LastUpdate: fieldTime(doc.Fields, "lastUpdate"),
	}, true, nil
}

func (r *StoreCounterRepository) Start(ctx context.Context, userID string) error {
	return r.store.Set(ctx, r.collection, userID, map[string]any{
		"count":      1,
		"lastUpdate": store.ServerTimestamp,
	})
}

func (r *StoreCounterRepository) Increment(ctx context.Context, userID string) error {
	return r.store.Update(ctx, r.collection, userID, []store.FieldOp{
		{Path: "count", Kind: store.FieldIncrement, Value: 1},
		{Path: "lastUpdate", Kind: store.FieldServerTime},
	})
}
