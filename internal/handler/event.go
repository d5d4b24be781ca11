package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/repository"
)

// EventHandler serves catalog operations: public browsing plus
// organizer/admin-gated mutations.  Ownership checks live in the
// repository; the handler only maps errors to status codes.
type EventHandler struct {
	Events   *repository.EventRepo
	Bookings *repository.BookingRepo
}

func NewEventHandler(events *repository.EventRepo, bookings *repository.BookingRepo) *EventHandler {
	if events == nil || bookings == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events, Bookings: bookings}
}

type eventCreateReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	CategoryID  *uint64 `json:"category_id"`
}

type eventPatchReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
	Capacity    *int     `json:"capacity"`
	CategoryID  *uint64  `json:"category_id"`
}

type eventResp struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	Location      string  `json:"location"`
	Price         float64 `json:"price"`
	Capacity      int     `json:"capacity"`
	ApprovalState string  `json:"approval_state"`
	OrganizerID   uint64  `json:"organizer_id"`
	CategoryID    *uint64 `json:"category_id"`
	CreatedAt     string  `json:"created_at"`

	// TicketsAvailable is only populated on the detail endpoint.
	TicketsAvailable *int `json:"tickets_available,omitempty"`
}

func toEventResp(e model.Event) eventResp {
	return eventResp{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Date:          e.Date.UTC().Format(time.RFC3339),
		Location:      e.Location,
		Price:         e.Price,
		Capacity:      e.Capacity,
		ApprovalState: string(e.ApprovalState),
		OrganizerID:   e.OrganizerID,
		CategoryID:    e.CategoryID,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/events.  Public; returns every event ordered by
// date.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/events/:id.  Public; includes the remaining
// ticket count so clients can show availability.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := toEventResp(e)
	if reserved, err := h.Bookings.ReservedTickets(ctx, id); err == nil {
		avail := e.Capacity - reserved
		if avail < 0 {
			avail = 0
		}
		resp.TicketsAvailable = &avail
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/events.  Requires the organizer or admin
// role (enforced by route middleware).
func (h *EventHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Location == "" || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields: title, location, date"})
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be non-negative"})
	}
	if req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}

	e, err := h.Events.Create(c.Request().Context(), model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		OrganizerID: uid,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, toEventResp(e))
}

// Update handles PUT /api/events/:id.  The organizer of record or an
// admin may patch any subset of fields.
func (h *EventHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	patch := repository.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		patch.Date = &date
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be non-negative"})
		}
		patch.Price = req.Price
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
		}
		patch.Capacity = req.Capacity
	}
	if req.CategoryID != nil {
		patch.CategoryID = req.CategoryID
		patch.SetCategory = true
	}

	e, err := h.Events.Update(c.Request().Context(), id, uid, getRole(c).IsAdmin(), patch)
	if err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}

// Delete handles DELETE /api/events/:id.  Cascades to the event's
// bookings and reviews.
func (h *EventHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.Delete(c.Request().Context(), id, uid, getRole(c).IsAdmin()); err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "event deleted"})
}
