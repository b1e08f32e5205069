package repositories

import (
	"context"

	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/store"
)

const collectionUserLikes = "userLikes"

// LikeRepository defines the interface for like data operations. Every
// mutation pairs the post's denormalized likes counter with the user's
// like-map entry in one atomic batch; the two are never written separately.
type LikeRepository interface {
	GetRecord(ctx context.Context, userID string) (models.LikeRecord, error)
	AddLike(ctx context.Context, userID, postID string) error
	RemoveLike(ctx context.Context, userID, postID string) error
}

// StoreLikeRepository implements LikeRepository on the document store.
type StoreLikeRepository struct {
	store           store.DocumentStore
	postsCollection string
}

// NewStoreLikeRepository creates a like repository whose counters live on
// documents of postsCollection (the pet feed).
func NewStoreLikeRepository(s store.DocumentStore, postsCollection string) *StoreLikeRepository {
	return &StoreLikeRepository{store: s, postsCollection: postsCollection}
}

// GetRecord returns the user's like-map. A missing document reads as an
// empty record; tombstoned entries (explicit nulls) are filtered out here so
// callers only ever see live likes.
func (r *StoreLikeRepository) GetRecord(ctx context.Context, userID string) (models.LikeRecord, error) {
	record := models.LikeRecord{UserID: userID, Likes: map[string]bool{}}

	doc, err := r.store.Get(ctx, collectionUserLikes, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return record, nil
		}
		return models.LikeRecord{}, err
	}

	for postID, v := range fieldMap(doc.Fields, "likes") {
		if liked, ok := v.(bool); ok && liked {
			record.Likes[postID] = true
		}
	}
	return record, nil
}

// AddLike marks postID liked and bumps the post's counter, creating the
// like-map document on first use.
func (r *StoreLikeRepository) AddLike(ctx context.Context, userID, postID string) error {
	return r.store.ApplyBatch(ctx, []store.WriteOp{
		{
			Kind:       store.WriteUpdate,
			Collection: r.postsCollection,
			Key:        postID,
			Ops: []store.FieldOp{
				{Path: "likesCount", Kind: store.FieldIncrement, Value: 1},
			},
		},
		{
			Kind:       store.WriteSet,
			Collection: collectionUserLikes,
			Key:        userID,
			Merge:      true,
			Fields: map[string]any{
				"likes": map[string]any{postID: true},
			},
		},
	})
}

// RemoveLike tombstones the like-map entry with an explicit null and drops
// the post's counter. The key is nulled rather than deleted because the
// counter moves in lockstep with it.
func (r *StoreLikeRepository) RemoveLike(ctx context.Context, userID, postID string) error {
	return r.store.ApplyBatch(ctx, []store.WriteOp{
		{
			Kind:       store.WriteUpdate,
			Collection: r.postsCollection,
			Key:        postID,
			Ops: []store.FieldOp{
				{Path: "likesCount", Kind: store.FieldIncrement, Value: -1},
			},
		},
		{
			Kind:       store.WriteUpdate,
			Collection: collectionUserLikes,
			Key:        userID,
			Ops: []store.FieldOp{
				{Path: "likes." + postID, Kind: store.FieldSet, Value: nil},
			},
		},
	})
}
