package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lera-app/ticketing-api/internal/model"
)

// ReviewRepo stores per-event ratings and comments.  One review per
// (user, event) is enforced by the unique key on the table.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

var ErrDuplicateReview = errors.New("user already reviewed this event")

// Create inserts a review.  Rating bounds are validated by the handler;
// the duplicate key on (user_id, event_id) surfaces as
// ErrDuplicateReview and a missing event as ErrEventNotFound via the
// foreign key.
func (r *ReviewRepo) Create(ctx context.Context, userID, eventID uint64, rating int, comment string) (model.Review, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (user_id, event_id, rating, comment) VALUES (?,?,?,?)",
		userID, eventID, rating, comment)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Review{}, ErrDuplicateReview
		}
		if isForeignKeyViolation(err) {
			return model.Review{}, ErrEventNotFound
		}
		return model.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Review{}, err
	}
	var rev model.Review
	err = r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, event_id, rating, comment, created_at FROM reviews WHERE id=?", id).
		Scan(&rev.ID, &rev.UserID, &rev.EventID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	return rev, err
}

// ListByEvent returns all reviews for an event, newest first.
func (r *ReviewRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, event_id, rating, COALESCE(comment,''), created_at FROM reviews WHERE event_id=? ORDER BY created_at DESC",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.EventID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
