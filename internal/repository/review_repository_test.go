package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lera-app/ticketing-api/internal/model"
)

func TestReviewOnePerUserPerEvent(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 10, 5)
	attendee := f.newUser(ctx, model.RoleAttendee)

	rv, err := f.Reviews.Create(ctx, attendee, ev.ID, 4, "great show")
	require.NoError(t, err)
	require.Equal(t, 4, rv.Rating)

	_, err = f.Reviews.Create(ctx, attendee, ev.ID, 5, "changed my mind")
	require.ErrorIs(t, err, ErrDuplicateReview)

	// a different user can still review the same event
	other := f.newUser(ctx, model.RoleAttendee)
	_, err = f.Reviews.Create(ctx, other, ev.ID, 2, "")
	require.NoError(t, err)

	reviews, err := f.Reviews.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
}

func TestReviewUnknownEvent(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	attendee := f.newUser(ctx, model.RoleAttendee)
	_, err := f.Reviews.Create(ctx, attendee, 1<<60, 3, "ghost event")
	require.ErrorIs(t, err, ErrEventNotFound)
}
