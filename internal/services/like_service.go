package services

import (
	"context"

	"github.com/OyhamburoDev/luna-backend/internal/apperrors"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
)

// LikeService flips a user's like relation on a post together with the
// post's denormalized counter.
type LikeService struct {
	likes repositories.LikeRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likes repositories.LikeRepository) *LikeService {
	return &LikeService{likes: likes}
}

// Toggle applies one like flip. currentlyLiked is the caller's view of the
// current state. Removing a like that the store does not actually record is
// a no-op returning false — UI state can drift, and decrementing the counter
// without a matching map entry would corrupt it. Both branches mutate the
// counter and the like-map in a single atomic batch.
func (s *LikeService) Toggle(ctx context.Context, userID, postID string, currentlyLiked bool) (bool, error) {
	if userID == "" {
		return false, apperrors.NewUnauthenticated()
	}

	if currentlyLiked {
		record, err := s.likes.GetRecord(ctx, userID)
		if err != nil {
			return false, asInfrastructure("like lookup", err)
		}
		if !record.Liked(postID) {
			return false, nil
		}
		if err := s.likes.RemoveLike(ctx, userID, postID); err != nil {
			return false, asInfrastructure("like removal", err)
		}
		return true, nil
	}

	if err := s.likes.AddLike(ctx, userID, postID); err != nil {
		return false, asInfrastructure("like add", err)
	}
	return true, nil
}

// IsLiked reports whether the user currently likes the post. Tombstoned and
// absent entries both read as not liked.
func (s *LikeService) IsLiked(ctx context.Context, userID, postID string) (bool, error) {
	record, err := s.likes.GetRecord(ctx, userID)
	if err != nil {
		return false, asInfrastructure("like lookup", err)
	}
	return record.Liked(postID), nil
}

// LikedPostIDs returns the ids of all posts the user currently likes.
func (s *LikeService) LikedPostIDs(ctx context.Context, userID string) ([]string, error) {
	record, err := s.likes.GetRecord(ctx, userID)
	if err != nil {
		return nil, asInfrastructure("like lookup", err)
	}
	ids := make([]string, 0, len(record.Likes))
	for id := range record.Likes {
		ids = append(ids, id)
	}
	return ids, nil
}
