package models

import "time"

// DailyCounter tracks how many rate-limited submissions a user has made
// since the start of the current UTC calendar day. One counter document per
// user per action kind; a counter whose LastUpdate falls on a prior day is
// stale and counts as zero.
type DailyCounter struct {
	UserID     string    `json:"user_id"`
	Count      int       `json:"count"`
	LastUpdate time.Time `json:"last_update"`
}
