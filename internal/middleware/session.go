package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/repository"
	"github.com/lera-app/ticketing-api/internal/utils"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// SessionAuth returns an Echo middleware that resolves the session
// cookie to an authenticated user.  The cookie value is hashed and
// looked up in the session store; on success the user's id and role are
// injected into the request context under "user_id" and "role".
// Requests without a live session are rejected with 401.  This
// middleware should wrap every mutating route except registration and
// login.
func SessionAuth(sessions *repository.SessionRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, role, err := resolveSession(c, sessions, users)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			c.Set("user_id", uid)
			c.Set("role", role)
			return next(c)
		}
	}
}

// resolveSession reads the session cookie, validates it against the
// store and loads the owning user's role.  Any failure collapses to a
// single error: callers treat every variant as "not authenticated".
func resolveSession(c echo.Context, sessions *repository.SessionRepo, users *repository.UserRepo) (uint64, model.Role, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0, "", echo.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	uid, err := sessions.Lookup(ctx, utils.HashSessionRaw(cookie.Value))
	if err != nil {
		return 0, "", echo.ErrUnauthorized
	}
	u, err := users.GetByID(ctx, uid)
	if err != nil {
		return 0, "", echo.ErrUnauthorized
	}
	return u.ID, u.Role, nil
}

// OptionalSession resolves the session like SessionAuth but lets
// unauthenticated requests through without setting context keys.  Used
// by GET /api/auth/me, which answers "null" for guests instead of 401.
func OptionalSession(sessions *repository.SessionRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid, role, err := resolveSession(c, sessions, users); err == nil {
				c.Set("user_id", uid)
				c.Set("role", role)
			}
			return next(c)
		}
	}
}
