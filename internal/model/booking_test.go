package model

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from BookingStatus
		to   BookingStatus
		ok   bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingPending, true},
		{BookingConfirmed, BookingConfirmed, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingCancelled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestBookingStatusActive(t *testing.T) {
	if !BookingPending.Active() || !BookingConfirmed.Active() {
		t.Error("pending and confirmed bookings hold capacity")
	}
	if BookingCancelled.Active() {
		t.Error("cancelled bookings must not hold capacity")
	}
}
