package model

import "time"

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether n is an acceptable review rating.
func ValidRating(n int) bool { return n >= MinRating && n <= MaxRating }

// Review stores a per-event rating and optional comment.  A user may
// review an event at most once; the schema enforces this with a unique
// key on (user_id, event_id).
type Review struct {
	ID        uint64    // reviews.id
	UserID    uint64    // reviews.user_id
	EventID   uint64    // reviews.event_id
	Rating    int       // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at
}
