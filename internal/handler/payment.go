package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/queue"
	"github.com/lera-app/ticketing-api/internal/repository"
	queue_publisher "github.com/lera-app/ticketing-api/internal/service"
)

// PaymentHandler is the payment stub: no gateway is involved, the
// endpoint just drives the pending -> confirmed transition and notifies
// the broker.  Publishing is best-effort; a broker outage never fails
// the payment.
type PaymentHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
}

func NewPaymentHandler(bookings *repository.BookingRepo, events *repository.EventRepo) *PaymentHandler {
	if bookings == nil || events == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Bookings: bookings, Events: events}
}

type paymentReq struct {
	BookingID uint64 `json:"booking_id"`
}

// Process handles POST /api/payments/process.  Confirming an
// already-confirmed booking succeeds idempotently; a cancelled booking
// cannot be paid for and yields 409.
func (h *PaymentHandler) Process(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil || req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id required"})
	}
	ctx := c.Request().Context()

	b, err := h.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if b.UserID != uid && !getRole(c).IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	b, err = h.Bookings.Confirm(ctx, req.BookingID)
	if err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm booking failed"})
	}

	ev := queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		EventID:      b.EventID,
		TicketsCount: b.TicketsCount,
		TotalPrice:   b.TotalPrice,
		Reference:    b.Reference,
		ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if e, err := h.Events.GetByID(ctx, b.EventID); err == nil {
		ev.EventTitle = e.Title
		ev.EventDate = e.Date.UTC().Format(time.RFC3339)
	}
	if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		slog.Warn("booking confirmation publish failed", "booking_id", b.ID, "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "payment successful",
		"booking": toBookingResp(b),
	})
}
