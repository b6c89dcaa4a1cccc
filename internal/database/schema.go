package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the tables on first start.  Unique keys on users.email,
// admins.email and reviews.user_id are the storage-level guards the
// repositories translate into conflict errors.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		first_name    VARCHAR(100) NOT NULL,
		last_name     VARCHAR(100) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		phone         VARCHAR(50)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME(3)  NOT NULL,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admins (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME(3)  NOT NULL,
		UNIQUE KEY uq_admins_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		user_id       CHAR(36)     NOT NULL,
		vehicle_type  ENUM('berline','suv','camionnette','moto','autre') NOT NULL,
		service       ENUM('exterieur','complet','forfait') NOT NULL,
		date          DATE         NOT NULL,
		time          VARCHAR(20)  NOT NULL,
		address       VARCHAR(255) NOT NULL,
		notes         TEXT         NULL,
		status        ENUM('pending','approved','rejected','completed') NOT NULL DEFAULT 'pending',
		reject_reason VARCHAR(500) NULL,
		created_at    DATETIME(3)  NOT NULL,
		KEY idx_reservations_user (user_id, created_at),
		KEY idx_reservations_status (status, created_at),
		CONSTRAINT fk_reservations_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		name       VARCHAR(150) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		subject    VARCHAR(255) NOT NULL,
		message    TEXT         NOT NULL,
		is_read    BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at DATETIME(3)  NOT NULL,
		KEY idx_contact_read (is_read)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		user_id    CHAR(36)     NOT NULL,
		rating     TINYINT      NOT NULL,
		comment    VARCHAR(500) NOT NULL,
		created_at DATETIME(3)  NOT NULL,
		UNIQUE KEY uq_reviews_user (user_id),
		CONSTRAINT fk_reviews_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema.  Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
