package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
)

func TestParseEventDate(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2026-09-15", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), false},
		{"2026-09-15T19:30:00Z", time.Date(2026, 9, 15, 19, 30, 0, 0, time.UTC), false},
		{"2026-09-15T19:30:00+02:00", time.Date(2026, 9, 15, 17, 30, 0, 0, time.UTC), false},
		{"15-09-2026", time.Time{}, true},
		{"not a date", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tc := range cases {
		got, err := parseEventDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseEventDate(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseEventDate(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("parseEventDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()

	newCtx := func(raw string) echo.Context {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c
	}

	if id, err := pathID(newCtx("42")); err != nil || id != 42 {
		t.Errorf("pathID(42) = (%d, %v)", id, err)
	}
	for _, raw := range []string{"0", "-1", "abc", ""} {
		if _, err := pathID(newCtx(raw)); err == nil {
			t.Errorf("pathID(%q) should fail", raw)
		}
	}
}

func TestGetRoleDefault(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
	if got := getRole(c); got != model.RoleUser {
		t.Errorf("getRole on empty context = %q, want %q", got, model.RoleUser)
	}
	c.Set("role", model.RoleAdmin)
	if got := getRole(c); got != model.RoleAdmin {
		t.Errorf("getRole = %q, want admin", got)
	}
}
