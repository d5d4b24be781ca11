package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/lera-app/ticketing-api/internal/model"
)

// BookingRepo provides the booking engine: atomic check-and-reserve
// against event capacity, the payment-driven confirm transition and
// owner cancellation.  All timestamp fields are stored in UTC.
//
// The capacity invariant (the sum of ticket counts across non-cancelled
// bookings never exceeds the event's capacity) is enforced by taking a
// row lock on the event for the duration of the check and insert.  Two
// concurrent requests for the same event therefore serialize on the
// event row; the loser of the race re-reads the reserved total and fails
// with ErrCapacityExceeded when the winner consumed the remaining seats.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

var ErrBookingNotFound = errors.New("booking not found")

// createAttempts bounds retries when MySQL aborts the reservation
// transaction with a deadlock or lock wait timeout.
const createAttempts = 3

const bookingColumns = "id, user_id, event_id, tickets_count, total_price, status, special_requests, reference, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b   model.Booking
		req sql.NullString
	)
	err := row.Scan(&b.ID, &b.UserID, &b.EventID, &b.TicketsCount, &b.TotalPrice,
		&b.Status, &req, &b.Reference, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if req.Valid {
		v := req.String
		b.SpecialRequests = &v
	}
	return b, nil
}

// Create reserves ticketsCount seats on an event for a user.  The whole
// check-and-reserve runs in one transaction:
//
//  1. lock the event row (SELECT ... FOR UPDATE) and read price/capacity
//  2. sum tickets over the event's non-cancelled bookings
//  3. reject with ErrCapacityExceeded when the request does not fit
//  4. insert the booking as pending with total_price = price * count
//
// The transaction is retried on deadlock/lock-timeout; nothing is
// persisted on any failure path.
func (r *BookingRepo) Create(ctx context.Context, userID, eventID uint64, ticketsCount int, specialRequests *string) (model.Booking, error) {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		b, err := r.createOnce(ctx, userID, eventID, ticketsCount, specialRequests)
		if err == nil {
			return b, nil
		}
		if !isRetryableTx(err) {
			return model.Booking{}, err
		}
		lastErr = err
	}
	return model.Booking{}, lastErr
}

func (r *BookingRepo) createOnce(ctx context.Context, userID, eventID uint64, ticketsCount int, specialRequests *string) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the event row so concurrent reservations serialize per event.
	var (
		price    float64
		capacity int
	)
	err = tx.QueryRowContext(ctx,
		"SELECT price, capacity FROM events WHERE id=? FOR UPDATE", eventID).
		Scan(&price, &capacity)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrEventNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}

	var reserved int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(tickets_count),0) FROM bookings WHERE event_id=? AND status <> 'cancelled'",
		eventID).Scan(&reserved)
	if err != nil {
		return model.Booking{}, err
	}
	if reserved+ticketsCount > capacity {
		return model.Booking{}, ErrCapacityExceeded
	}

	total := price * float64(ticketsCount)
	reference := uuid.NewString()
	var req any
	if specialRequests != nil {
		req = *specialRequests
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, event_id, tickets_count, total_price, status, special_requests, reference)
		 VALUES (?,?,?,?,?,?,?)`,
		userID, eventID, ticketsCount, total, model.BookingPending, req, reference)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}

	// Query back the full row to populate timestamps and defaults.
	b, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=?", id))
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=?", id))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns all bookings of a user, newest first.  When no
// bookings exist, an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Confirm transitions a booking from pending to confirmed.  Confirming
// an already-confirmed booking is idempotent; a cancelled booking is a
// dead end and yields ErrForbidden for the caller to map to a conflict.
func (r *BookingRepo) Confirm(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if !b.Status.CanTransitionTo(model.BookingConfirmed) {
		return model.Booking{}, ErrForbidden
	}
	if b.Status == model.BookingConfirmed {
		return b, nil
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		model.BookingConfirmed, id, model.BookingPending); err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

// Cancel transitions a booking to cancelled, releasing its tickets for
// future reservations.  Only the owning user or an admin may cancel.
// Cancelling an already-cancelled booking is a no-op.
func (r *BookingRepo) Cancel(ctx context.Context, id, callerID uint64, callerIsAdmin bool) error {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != callerID && !callerIsAdmin {
		return ErrForbidden
	}
	if b.Status == model.BookingCancelled {
		return nil
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status <> ?",
		model.BookingCancelled, id, model.BookingCancelled)
	return err
}

// ReservedTickets returns the current reserved total for an event: the
// sum of ticket counts over its pending and confirmed bookings.
func (r *BookingRepo) ReservedTickets(ctx context.Context, eventID uint64) (int, error) {
	var reserved int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(tickets_count),0) FROM bookings WHERE event_id=? AND status <> 'cancelled'",
		eventID).Scan(&reserved)
	return reserved, err
}
