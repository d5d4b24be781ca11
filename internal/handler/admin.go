package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/repository"
)

// AdminHandler serves the event moderation queue.  Every route is
// wrapped with RequireRole(admin).
type AdminHandler struct {
	Events *repository.EventRepo
}

func NewAdminHandler(events *repository.EventRepo) *AdminHandler {
	if events == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Events: events}
}

// ListPending handles GET /api/admin/events/pending.
func (h *AdminHandler) ListPending(c echo.Context) error {
	events, err := h.Events.ListPendingApproval(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load pending events"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

// Approve handles POST /api/admin/events/:id/approve.  Approving twice
// is harmless.
func (h *AdminHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.Events.Approve(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve event failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "event approved",
		"event":   toEventResp(e),
	})
}
