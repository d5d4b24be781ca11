package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lera-app/ticketing-api/internal/model"
)

func TestEventUpdateOwnership(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 10, 20)
	stranger := f.newUser(ctx, model.RoleOrganizer)

	title := "Renamed"
	_, err := f.Events.Update(ctx, ev.ID, stranger, false, EventPatch{Title: &title})
	require.ErrorIs(t, err, ErrForbidden)

	got, err := f.Events.Update(ctx, ev.ID, ev.OrganizerID, false, EventPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)

	// untouched fields survive a partial update
	require.Equal(t, ev.Capacity, got.Capacity)
	require.Equal(t, ev.Location, got.Location)

	// admins bypass ownership
	price := 30.0
	got, err = f.Events.Update(ctx, ev.ID, stranger, true, EventPatch{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 30.0, got.Price)
}

func TestEventApprovalFlow(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	organizer := f.newUser(ctx, model.RoleOrganizer)
	ev, err := f.Events.Create(ctx, model.Event{
		Title:       "Awaiting Moderation",
		Date:        time.Now().UTC().Add(48 * time.Hour),
		Location:    "Side Stage",
		Price:       5,
		Capacity:    50,
		OrganizerID: organizer,
	})
	require.NoError(t, err)

	pending, err := f.Events.ListPendingApproval(ctx)
	require.NoError(t, err)
	require.True(t, containsEvent(pending, ev.ID), "freshly created event should be queued for approval")

	got, err := f.Events.Approve(ctx, ev.ID)
	require.NoError(t, err)
	require.Equal(t, model.ApprovalApproved, got.ApprovalState)

	pending, err = f.Events.ListPendingApproval(ctx)
	require.NoError(t, err)
	require.False(t, containsEvent(pending, ev.ID))

	_, err = f.Events.Approve(ctx, 1<<60)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func containsEvent(events []model.Event, id uint64) bool {
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}
