package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/repository"
)

// BookingHandler exposes the booking engine over HTTP.  All routes run
// behind SessionAuth.  The capacity check itself happens inside the
// repository transaction; the handler validates inputs and maps
// sentinel errors to the HTTP taxonomy.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewBookingHandler(bookings *repository.BookingRepo) *BookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

type bookingCreateReq struct {
	EventID         uint64  `json:"event_id"`
	TicketsCount    int     `json:"tickets_count"`
	SpecialRequests *string `json:"special_requests"`
}

type bookingResp struct {
	ID              uint64  `json:"id"`
	UserID          uint64  `json:"user_id"`
	EventID         uint64  `json:"event_id"`
	TicketsCount    int     `json:"tickets_count"`
	TotalPrice      float64 `json:"total_price"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	Reference       string  `json:"reference"`
	CreatedAt       string  `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:              b.ID,
		UserID:          b.UserID,
		EventID:         b.EventID,
		TicketsCount:    b.TicketsCount,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		Reference:       b.Reference,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/bookings.  Either a pending booking row is
// persisted with total_price = price * tickets, or nothing is; capacity
// conflicts come back as 409.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id required"})
	}
	if req.TicketsCount < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets_count must be at least 1"})
	}

	b, err := h.Bookings.Create(c.Request().Context(), uid, req.EventID, req.TicketsCount, req.SpecialRequests)
	if err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case repository.ErrCapacityExceeded:
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough tickets available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// List handles GET /api/bookings and returns the caller's bookings.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel handles DELETE /api/bookings/:id.  The booking transitions to
// cancelled, which releases its tickets; the row stays for history.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.Cancel(c.Request().Context(), id, uid, getRole(c).IsAdmin()); err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}
