package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lera-app/ticketing-api/internal/model"
)

// EventRepo provides CRUD operations for events.  Ownership rules live
// here: updates and deletes succeed only for the organizer of record or
// an admin, surfacing ErrForbidden otherwise.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

var ErrEventNotFound = errors.New("event not found")

const eventColumns = "id, title, description, date, location, price, capacity, approval_state, organizer_id, category_id, created_at"

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e     model.Event
		desc  sql.NullString
		catID sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Title, &desc, &e.Date, &e.Location, &e.Price,
		&e.Capacity, &e.ApprovalState, &e.OrganizerID, &catID, &e.CreatedAt)
	if err != nil {
		return model.Event{}, err
	}
	e.Description = desc.String
	if catID.Valid {
		cid := uint64(catID.Int64)
		e.CategoryID = &cid
	}
	return e, nil
}

// Create inserts a new event owned by organizerID and returns the stored
// row.  Field validation happens in the handler before this is called.
func (r *EventRepo) Create(ctx context.Context, e model.Event) (model.Event, error) {
	var catID any
	if e.CategoryID != nil {
		catID = *e.CategoryID
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO events (title, description, date, location, price, capacity, organizer_id, category_id)
		 VALUES (?,?,?,?,?,?,?,?)`,
		strings.TrimSpace(e.Title), e.Description, e.Date.UTC(), strings.TrimSpace(e.Location),
		e.Price, e.Capacity, e.OrganizerID, catID)
	if err != nil {
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=?", id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// List returns all events ordered by date ascending.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY date ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// EventPatch carries optional field updates for an event.  Nil pointers
// leave the column untouched.  SetCategory distinguishes "clear the
// category" from "do not touch it".
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Price       *float64
	Capacity    *int
	CategoryID  *uint64
	SetCategory bool
}

// Update applies a patch to an event after verifying the caller may
// modify it.  Returns ErrEventNotFound, ErrForbidden or the updated row.
func (r *EventRepo) Update(ctx context.Context, id, callerID uint64, callerIsAdmin bool, p EventPatch) (model.Event, error) {
	if err := r.checkOwnership(ctx, id, callerID, callerIsAdmin); err != nil {
		return model.Event{}, err
	}
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	if p.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, strings.TrimSpace(*p.Title))
	}
	if p.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *p.Description)
	}
	if p.Date != nil {
		sets = append(sets, "date=?")
		args = append(args, p.Date.UTC())
	}
	if p.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, strings.TrimSpace(*p.Location))
	}
	if p.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *p.Price)
	}
	if p.Capacity != nil {
		sets = append(sets, "capacity=?")
		args = append(args, *p.Capacity)
	}
	if p.SetCategory {
		sets = append(sets, "category_id=?")
		if p.CategoryID != nil {
			args = append(args, *p.CategoryID)
		} else {
			args = append(args, nil)
		}
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
			return model.Event{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an event after verifying ownership.  Bookings and
// reviews go with it through the cascading foreign keys.
func (r *EventRepo) Delete(ctx context.Context, id, callerID uint64, callerIsAdmin bool) error {
	if err := r.checkOwnership(ctx, id, callerID, callerIsAdmin); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	return err
}

func (r *EventRepo) checkOwnership(ctx context.Context, id, callerID uint64, callerIsAdmin bool) error {
	var organizerID uint64
	err := r.DB.QueryRowContext(ctx, "SELECT organizer_id FROM events WHERE id=?", id).Scan(&organizerID)
	if err == sql.ErrNoRows {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if organizerID != callerID && !callerIsAdmin {
		return ErrForbidden
	}
	return nil
}

// ListPendingApproval returns events awaiting admin sign-off, oldest
// first so the moderation queue is fair.
func (r *EventRepo) ListPendingApproval(ctx context.Context) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE approval_state='pending' ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Approve flips an event's approval state to approved.  Approving an
// already-approved event is a no-op.
func (r *EventRepo) Approve(ctx context.Context, id uint64) (model.Event, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE events SET approval_state='approved' WHERE id=?", id); err != nil {
		return model.Event{}, err
	}
	// GetByID settles whether the event existed at all.
	return r.GetByID(ctx, id)
}
