package model

import "testing"

func TestValidRating(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		if !ValidRating(n) {
			t.Errorf("rating %d should be valid", n)
		}
	}
	for _, n := range []int{0, -1, 6, 100} {
		if ValidRating(n) {
			t.Errorf("rating %d should be rejected", n)
		}
	}
}
