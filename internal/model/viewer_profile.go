package model

import "github.com/google/uuid"

// ViewerProfile is the ranking-time snapshot of the requesting user's
// preferences. It is assembled from the profile tables (and Redis cache)
// once per feed request and never mutated by the ranking engine.
type ViewerProfile struct {
	UserID       uuid.UUID   `json:"user_id"`
	Interests    []string    `json:"interests"`
	FollowingIDs []uuid.UUID `json:"following_ids"`
	BlockedIDs   []uuid.UUID `json:"blocked_ids"`
	MutedIDs     []uuid.UUID `json:"muted_ids"`
}
