package model

import "time"

// BookingStatus is the closed state set of a booking.  The lifecycle is
// pending -> confirmed (payment) and pending/confirmed -> cancelled;
// nothing leaves cancelled.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step.  Self-transitions are allowed for pending and
// confirmed so that confirmation stays idempotent.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingPending || next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingCancelled:
		return false
	}
	return false
}

// Active reports whether the booking still counts against its event's
// capacity.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking records a user's ticket purchase for an event.  The total
// price is computed server-side at creation time as price * tickets and
// never trusted from the client.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who made the booking.
//  EventID         – event being booked.
//  TicketsCount    – number of tickets, at least 1.
//  TotalPrice      – event price * tickets at creation time.
//  Status          – lifecycle state (pending/confirmed/cancelled).
//  SpecialRequests – optional free-form text from the customer.
//  Reference       – uuid correlation id handed to the payment stub.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64        // bookings.id
	UserID          uint64        // bookings.user_id
	EventID         uint64        // bookings.event_id
	TicketsCount    int           // bookings.tickets_count
	TotalPrice      float64       // bookings.total_price
	Status          BookingStatus // bookings.status
	SpecialRequests *string       // bookings.special_requests (nullable)
	Reference       string        // bookings.reference
	CreatedAt       time.Time     // bookings.created_at
	UpdatedAt       time.Time     // bookings.updated_at
}
