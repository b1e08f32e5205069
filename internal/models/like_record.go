package models

// LikeRecord is a user's like-map: post id -> liked. The stored document
// keeps removed likes as explicit nulls (tombstones); those are filtered out
// at the persistence boundary, so Likes here only ever holds live likes.
type LikeRecord struct {
	UserID string          `json:"user_id"`
	Likes  map[string]bool `json:"likes"`
}

// Liked reports whether the record marks postID as currently liked.
func (r LikeRecord) Liked(postID string) bool {
	return r.Likes[postID]
}

// ToggleLikeRequest defines the request body for toggling a like
type ToggleLikeRequest struct {
	CurrentlyLiked bool `json:"currently_liked"`
}
