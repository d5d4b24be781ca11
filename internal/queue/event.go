// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking payment succeeds.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64  `json:"booking_id"`
	UserID       uint64  `json:"user_id"`
	EventID      uint64  `json:"event_id"`
	EventTitle   string  `json:"event_title"`
	EventDate    string  `json:"event_date"`
	TicketsCount int     `json:"tickets_count"`
	TotalPrice   float64 `json:"total_price"`
	Reference    string  `json:"reference"`
	ConfirmedAt  string  `json:"confirmed_at"`
}
