package database

import (
	"context"
	"database/sql"
)

// schema holds CREATE TABLE statements executed at startup.  Statements
// are idempotent so restarting the server against an existing database
// is safe.  Foreign keys cascade so that deleting an event removes its
// bookings and reviews and deleting a user removes their sessions.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(80)  NOT NULL,
		email         VARCHAR(120) NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		role          ENUM('user','attendee','organizer','admin') NOT NULL DEFAULT 'attendee',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_sessions_token_hash (token_hash),
		KEY idx_sessions_user (user_id),
		CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS categories (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS events (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title          VARCHAR(200) NOT NULL,
		description    TEXT,
		date           DATETIME NOT NULL,
		location       VARCHAR(200) NOT NULL,
		price          DECIMAL(10,2) NOT NULL DEFAULT 0,
		capacity       INT NOT NULL,
		approval_state ENUM('pending','approved') NOT NULL DEFAULT 'pending',
		organizer_id   BIGINT UNSIGNED NOT NULL,
		category_id    BIGINT UNSIGNED NULL,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_events_organizer (organizer_id),
		KEY idx_events_category (category_id),
		CONSTRAINT fk_events_organizer FOREIGN KEY (organizer_id) REFERENCES users(id),
		CONSTRAINT fk_events_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL,
		CONSTRAINT chk_events_capacity CHECK (capacity > 0),
		CONSTRAINT chk_events_price CHECK (price >= 0)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id          BIGINT UNSIGNED NOT NULL,
		event_id         BIGINT UNSIGNED NOT NULL,
		tickets_count    INT NOT NULL DEFAULT 1,
		total_price      DECIMAL(10,2) NOT NULL,
		status           ENUM('pending','confirmed','cancelled') NOT NULL DEFAULT 'pending',
		special_requests TEXT,
		reference        CHAR(36) NOT NULL,
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bookings_reference (reference),
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_event_status (event_id, status),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_bookings_event FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		CONSTRAINT chk_bookings_tickets CHECK (tickets_count >= 1)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		event_id   BIGINT UNSIGNED NOT NULL,
		rating     TINYINT NOT NULL,
		comment    TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reviews_user_event (user_id, event_id),
		KEY idx_reviews_event (event_id),
		CONSTRAINT fk_reviews_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_reviews_event FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		CONSTRAINT chk_reviews_rating CHECK (rating BETWEEN 1 AND 5)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates all application tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
