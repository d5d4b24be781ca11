package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
)

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	mw := RequireRole(model.RoleOrganizer, model.RoleAdmin)

	cases := []struct {
		name string
		role any
		want int
	}{
		{"organizer allowed", model.RoleOrganizer, http.StatusOK},
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"attendee rejected", model.RoleAttendee, http.StatusForbidden},
		{"missing role rejected", nil, http.StatusForbidden},
		{"wrong type rejected", "admin", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest("POST", "/api/events", nil), rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			if err := mw(next)(c); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
