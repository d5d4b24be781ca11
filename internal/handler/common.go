package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
)

// getUserID extracts the authenticated user's id from echo.Context.
// SessionAuth stores it as uint64; anything else means the middleware
// did not run.
func getUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
		return v, nil
	}
	return 0, errors.New("no authenticated user in context")
}

// getRole returns the authenticated user's role, defaulting to the
// weakest role when absent.
func getRole(c echo.Context) model.Role {
	if r, ok := c.Get("role").(model.Role); ok {
		return r
	}
	return model.RoleUser
}

// pathID parses the ":id" route parameter as a positive integer.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseEventDate accepts either a date-only or a full timestamp
// representation, mirroring what clients send: RFC3339 first, then
// plain YYYY-MM-DD.
func parseEventDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, use YYYY-MM-DD or RFC3339")
	}
	return t.UTC(), nil
}
