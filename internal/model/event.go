package model

import "time"

// ApprovalState tracks the admin moderation workflow for an event.
// Newly created events start out pending and become publicly flagged as
// approved once an admin signs off.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
)

// Event represents a row in the `events` table.  An event belongs to one
// organizer and at most one category; bookings and reviews hang off it
// and are removed with it.
//
// Fields:
//  ID            – primary key identifier.
//  Title         – event title.
//  Description   – free-form description.
//  Date          – when the event takes place (UTC).
//  Location      – venue description.
//  Price         – ticket price, non-negative.
//  Capacity      – maximum tickets across all non-cancelled bookings.
//  ApprovalState – admin moderation state (pending/approved).
//  OrganizerID   – user who owns the event.
//  CategoryID    – optional category reference.
//  CreatedAt     – creation timestamp.
type Event struct {
	ID            uint64        // events.id
	Title         string        // events.title
	Description   string        // events.description
	Date          time.Time     // events.date
	Location      string        // events.location
	Price         float64       // events.price
	Capacity      int           // events.capacity
	ApprovalState ApprovalState // events.approval_state
	OrganizerID   uint64        // events.organizer_id
	CategoryID    *uint64       // events.category_id (nullable)
	CreatedAt     time.Time     // events.created_at
}

// Category represents a row in the `categories` table.  Category names
// are unique.
type Category struct {
	ID   uint64 // categories.id
	Name string // categories.name
}
