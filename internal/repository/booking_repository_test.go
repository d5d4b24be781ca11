package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lera-app/ticketing-api/internal/database"
	"github.com/lera-app/ticketing-api/internal/model"
)

// openTestDB connects to the database named by TEST_DATABASE_DSN and
// makes sure the schema exists.  Tests that need MySQL are skipped when
// the variable is unset so the unit suite stays self-contained.
func openTestDB(t *testing.T) *testFixture {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database tests")
	}
	db, err := database.OpenDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, database.EnsureSchema(ctx, db))

	return &testFixture{
		t:        t,
		Users:    NewUserRepo(db),
		Events:   NewEventRepo(db),
		Bookings: NewBookingRepo(db),
		Reviews:  NewReviewRepo(db),
	}
}

type testFixture struct {
	t        *testing.T
	Users    *UserRepo
	Events   *EventRepo
	Bookings *BookingRepo
	Reviews  *ReviewRepo
}

// newUser registers a user with a unique name so repeated test runs do
// not collide on the unique keys.
func (f *testFixture) newUser(ctx context.Context, role model.Role) uint64 {
	f.t.Helper()
	suffix := uuid.NewString()[:8]
	id, err := f.Users.Create(ctx, "t_"+suffix, "t_"+suffix+"@example.com", "test-pass-123", role, 4)
	require.NoError(f.t, err)
	return id
}

// newEvent creates an event owned by a fresh organizer.  Fresh events
// start in the pending approval state.
func (f *testFixture) newEvent(ctx context.Context, capacity int, price float64) model.Event {
	f.t.Helper()
	organizerID := f.newUser(ctx, model.RoleOrganizer)
	ev, err := f.Events.Create(ctx, model.Event{
		Title:       "Test Event " + uuid.NewString()[:8],
		Description: "integration fixture",
		Date:        time.Now().UTC().Add(72 * time.Hour),
		Location:    "Test Hall",
		Price:       price,
		Capacity:    capacity,
		OrganizerID: organizerID,
	})
	require.NoError(f.t, err)
	return ev
}

func TestBookingCreateComputesTotal(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 10, 19.99)
	attendee := f.newUser(ctx, model.RoleAttendee)

	b, err := f.Bookings.Create(ctx, attendee, ev.ID, 3, nil)
	require.NoError(t, err)
	require.Equal(t, model.BookingPending, b.Status)
	require.Equal(t, 3, b.TicketsCount)
	require.InDelta(t, 59.97, b.TotalPrice, 0.001)
	require.Len(t, b.Reference, 36)
}

func TestBookingCapacityEnforced(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 5, 10)
	first := f.newUser(ctx, model.RoleAttendee)
	second := f.newUser(ctx, model.RoleAttendee)

	_, err := f.Bookings.Create(ctx, first, ev.ID, 4, nil)
	require.NoError(t, err)

	_, err = f.Bookings.Create(ctx, second, ev.ID, 2, nil)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// the remaining seat is still bookable
	_, err = f.Bookings.Create(ctx, second, ev.ID, 1, nil)
	require.NoError(t, err)
}

func TestBookingConcurrentLastTicket(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 1, 25)
	first := f.newUser(ctx, model.RoleAttendee)
	second := f.newUser(ctx, model.RoleAttendee)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, uid := range []uint64{first, second} {
		wg.Add(1)
		go func(i int, uid uint64) {
			defer wg.Done()
			_, errs[i] = f.Bookings.Create(ctx, uid, ev.ID, 1, nil)
		}(i, uid)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, ErrCapacityExceeded)
			lost++
		}
	}
	require.Equal(t, 1, won, "exactly one booking may take the last ticket")
	require.Equal(t, 1, lost)
}

func TestBookingCancelReleasesCapacity(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 2, 10)
	attendee := f.newUser(ctx, model.RoleAttendee)

	b, err := f.Bookings.Create(ctx, attendee, ev.ID, 2, nil)
	require.NoError(t, err)

	other := f.newUser(ctx, model.RoleAttendee)
	_, err = f.Bookings.Create(ctx, other, ev.ID, 1, nil)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	require.NoError(t, f.Bookings.Cancel(ctx, b.ID, attendee, false))

	got, err := f.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingCancelled, got.Status)

	_, err = f.Bookings.Create(ctx, other, ev.ID, 2, nil)
	require.NoError(t, err)
}

func TestBookingConfirmIdempotent(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 4, 15)
	attendee := f.newUser(ctx, model.RoleAttendee)

	b, err := f.Bookings.Create(ctx, attendee, ev.ID, 1, nil)
	require.NoError(t, err)

	got, err := f.Bookings.Confirm(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingConfirmed, got.Status)

	// confirming again is a no-op
	got, err = f.Bookings.Confirm(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingConfirmed, got.Status)

	// a cancelled booking cannot be confirmed
	require.NoError(t, f.Bookings.Cancel(ctx, b.ID, attendee, false))
	_, err = f.Bookings.Confirm(ctx, b.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestBookingCancelOwnership(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 4, 15)
	owner := f.newUser(ctx, model.RoleAttendee)
	stranger := f.newUser(ctx, model.RoleAttendee)

	b, err := f.Bookings.Create(ctx, owner, ev.ID, 1, nil)
	require.NoError(t, err)

	require.ErrorIs(t, f.Bookings.Cancel(ctx, b.ID, stranger, false), ErrForbidden)
	require.NoError(t, f.Bookings.Cancel(ctx, b.ID, stranger, true))
}

func TestEventDeleteCascadesBookings(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	ev := f.newEvent(ctx, 4, 15)
	attendee := f.newUser(ctx, model.RoleAttendee)

	b, err := f.Bookings.Create(ctx, attendee, ev.ID, 1, nil)
	require.NoError(t, err)

	require.NoError(t, f.Events.Delete(ctx, ev.ID, ev.OrganizerID, false))

	_, err = f.Bookings.GetByID(ctx, b.ID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingUnknownEvent(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	attendee := f.newUser(ctx, model.RoleAttendee)
	_, err := f.Bookings.Create(ctx, attendee, 1<<60, 1, nil)
	require.ErrorIs(t, err, ErrEventNotFound)
}
