package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"

	"github.com/lera-app/ticketing-api/internal/config"
	"github.com/lera-app/ticketing-api/internal/database"
	"github.com/lera-app/ticketing-api/internal/handler"
	"github.com/lera-app/ticketing-api/internal/queue"
	"github.com/lera-app/ticketing-api/internal/repository"
	"github.com/lera-app/ticketing-api/internal/router"
	queue_publisher "github.com/lera-app/ticketing-api/internal/service"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		slog.Error("can't connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}
	cancel()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	events := repository.NewEventRepo(db)
	categories := repository.NewCategoryRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Redis is optional: without it the rate limiter and response cache
	// become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		slog.Warn("redis unavailable, rate limiting and response cache disabled")
	}

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, sessions),
		Events:   handler.NewEventHandler(events, bookings),
		Category: handler.NewCategoryHandler(categories),
		Bookings: handler.NewBookingHandler(bookings),
		Payments: handler.NewPaymentHandler(bookings, events),
		Reviews:  handler.NewReviewHandler(reviews),
		Admin:    handler.NewAdminHandler(events),
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, h, sessions, users, rdb)

	// Background worker turning booking.confirmed messages into
	// notification log lines.
	go queue.StartBookingConsumer(queue_publisher.BrokerURL())

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
