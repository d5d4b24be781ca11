// Command seed populates the database with a deterministic demo dataset
// for manual testing, or inspects row counts with -inspect.  It reuses
// the server's repositories so seeded data passes the same validation
// and hashing as API-created data.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/lera-app/ticketing-api/internal/config"
	"github.com/lera-app/ticketing-api/internal/database"
	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/repository"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen}),
	))
}

func main() {
	inspect := flag.Bool("inspect", false, "print row counts per table and exit")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		slog.Error("can't connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	if *inspect {
		if err := printCounts(ctx, db); err != nil {
			slog.Error("inspect failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := seed(ctx, db, cfg); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed complete")
}

func printCounts(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"users", "categories", "events", "bookings", "reviews", "sessions"} {
		var n int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return err
		}
		fmt.Printf("%-12s %d\n", table, n)
	}
	return nil
}

func seed(ctx context.Context, db *sql.DB, cfg config.Config) error {
	users := repository.NewUserRepo(db)
	categories := repository.NewCategoryRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	sessions := repository.NewSessionRepo(db)

	// Housekeeping while we're here: long-dead sessions serve nobody.
	if n, err := sessions.PurgeExpired(ctx, 30*24*time.Hour); err == nil && n > 0 {
		slog.Info("purged expired sessions", "count", n)
	}

	adminID, err := users.Create(ctx, "admin", "admin@lera.app", "admin123", model.RoleAdmin, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	orgID, err := users.Create(ctx, "olivia", "olivia@lera.app", "organizer123", model.RoleOrganizer, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("create organizer: %w", err)
	}
	attendees := make([]uint64, 0, 3)
	for i, name := range []string{"amira", "ben", "carla"} {
		id, err := users.Create(ctx, name, fmt.Sprintf("%s@example.com", name), fmt.Sprintf("password%d", i+1), model.RoleAttendee, cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("create attendee %s: %w", name, err)
		}
		attendees = append(attendees, id)
	}

	music, err := categories.Create(ctx, "Music")
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	tech, err := categories.Create(ctx, "Tech")
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	concert, err := events.Create(ctx, model.Event{
		Title:       "Open Air Concert",
		Description: "An evening of live music in the park.",
		Date:        time.Now().UTC().AddDate(0, 1, 0),
		Location:    "Riverside Park",
		Price:       25.50,
		Capacity:    200,
		OrganizerID: orgID,
		CategoryID:  &music.ID,
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	meetup, err := events.Create(ctx, model.Event{
		Title:       "Go Meetup",
		Description: "Talks on building services in Go.",
		Date:        time.Now().UTC().AddDate(0, 0, 14),
		Location:    "City Library, Room 2",
		Price:       0,
		Capacity:    40,
		OrganizerID: orgID,
		CategoryID:  &tech.ID,
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if _, err := events.Approve(ctx, concert.ID); err != nil {
		return fmt.Errorf("approve event: %w", err)
	}

	for i, uid := range attendees {
		if _, err := bookings.Create(ctx, uid, concert.ID, i+1, nil); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
	}
	if _, err := bookings.Create(ctx, attendees[0], meetup.ID, 2, nil); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	if _, err := reviews.Create(ctx, attendees[0], concert.ID, 5, "Fantastic lineup!"); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	if _, err := reviews.Create(ctx, attendees[1], concert.ID, 4, "Great vibe, long queues."); err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	slog.Info("seeded demo data", "admin_id", adminID, "organizer_id", orgID, "events", 2)
	return nil
}
