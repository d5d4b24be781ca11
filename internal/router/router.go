package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lera-app/ticketing-api/internal/config"
	"github.com/lera-app/ticketing-api/internal/handler"
	"github.com/lera-app/ticketing-api/internal/middleware"
	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/repository"
)

// Handlers bundles every HTTP handler the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Events   *handler.EventHandler
	Category *handler.CategoryHandler
	Bookings *handler.BookingHandler
	Payments *handler.PaymentHandler
	Reviews  *handler.ReviewHandler
	Admin    *handler.AdminHandler
}

// RegisterRoutes wires all application routes under the /api prefix.
// Public browse endpoints carry the Redis response cache; everything
// mutating sits behind SessionAuth; admin routes further require the
// admin role.  The rate limiter wraps the whole API.
func RegisterRoutes(e *echo.Echo, h Handlers, sessions *repository.SessionRepo, users *repository.UserRepo, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	api := e.Group("/api")
	api.GET("/health", handler.Health)

	// Registration and login are the only mutating routes without a
	// session; /auth/me resolves the session when present.
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", h.Auth.Me, middleware.OptionalSession(sessions, users))

	// Public browse endpoints, cacheable.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	api.GET("/events", h.Events.List, cache)
	api.GET("/events/:id", h.Events.Get)
	api.GET("/categories", h.Category.List, cache)
	api.GET("/reviews/event/:id", h.Reviews.ListByEvent)

	// Everything below requires a live session.
	authed := api.Group("", middleware.SessionAuth(sessions, users))
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.PATCH("/auth/me", h.Auth.UpdateProfile)

	// Event mutations: creating needs the organizer (or admin) role;
	// update/delete additionally check ownership in the repository.
	organizer := middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin)
	authed.POST("/events", h.Events.Create, organizer)
	authed.PUT("/events/:id", h.Events.Update, organizer)
	authed.DELETE("/events/:id", h.Events.Delete, organizer)

	authed.POST("/bookings", h.Bookings.Create)
	authed.GET("/bookings", h.Bookings.List)
	authed.DELETE("/bookings/:id", h.Bookings.Cancel)

	authed.POST("/payments/process", h.Payments.Process)

	authed.POST("/reviews", h.Reviews.Create)

	// Admin-only surface: category mutations and the moderation queue.
	admin := authed.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/categories", h.Category.Create)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.DELETE("/categories/:id", h.Category.Delete)
	admin.GET("/admin/events/pending", h.Admin.ListPending)
	admin.POST("/admin/events/:id/approve", h.Admin.Approve)
}
