package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/repository"
)

// ReviewHandler serves per-event reviews.  Listing is public; posting
// requires a session but deliberately not a booking: anyone logged in
// may rate an event.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	if reviews == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews}
}

type reviewCreateReq struct {
	EventID uint64 `json:"event_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewResp struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	EventID   uint64 `json:"event_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

func toReviewResp(r model.Review) reviewResp {
	return reviewResp{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id required"})
	}
	if !model.ValidRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be an integer between 1 and 5"})
	}

	rev, err := h.Reviews.Create(c.Request().Context(), uid, req.EventID, req.Rating, req.Comment)
	if err != nil {
		switch err {
		case repository.ErrDuplicateReview:
			return c.JSON(http.StatusConflict, echo.Map{"error": "you already reviewed this event"})
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, toReviewResp(rev))
}

// ListByEvent handles GET /api/reviews/event/:id.
func (h *ReviewHandler) ListByEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	reviews, err := h.Reviews.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	out := make([]reviewResp, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResp(r))
	}
	return c.JSON(http.StatusOK, out)
}
