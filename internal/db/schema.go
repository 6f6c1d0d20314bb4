package db

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryRower is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const BookingsTable = "bookings"

// passenger_email uses a binary collation so email lookups are exact matches.
const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id VARCHAR(100) NOT NULL DEFAULT '',
	passenger_first_name VARCHAR(255) NOT NULL DEFAULT '',
	passenger_last_name VARCHAR(255) NOT NULL DEFAULT '',
	passenger_phone VARCHAR(100) NOT NULL DEFAULT '',
	passenger_email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL DEFAULT '',
	pickup_date DATETIME(6) NULL,
	pickup_time VARCHAR(50) NOT NULL DEFAULT '',
	pickup_location VARCHAR(500) NOT NULL DEFAULT '',
	dropoff_location VARCHAR(500) NOT NULL DEFAULT '',
	vehicle_type VARCHAR(100) NOT NULL DEFAULT '',
	service_type VARCHAR(100) NOT NULL DEFAULT '',
	base_price DECIMAL(12,2) NULL,
	total_fare DECIMAL(12,2) NULL,
	status VARCHAR(50) NOT NULL DEFAULT '',
	job_status VARCHAR(50) NOT NULL DEFAULT '',
	payment_status VARCHAR(50) NOT NULL DEFAULT '',
	tracking_enabled TINYINT(1) NOT NULL DEFAULT 0,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	KEY idx_bookings_passenger_email (passenger_email),
	KEY idx_bookings_status (status),
	KEY idx_bookings_job_status (job_status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

// HasTable reports whether table exists in the current schema. Lookup errors
// count as absent.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

type SchemaDB interface {
	QueryRower
	Execer
}

// EnsureBookingsTable creates the bookings table on first start.
func EnsureBookingsTable(ctx context.Context, db SchemaDB) error {
	if HasTable(ctx, db, BookingsTable) {
		return nil
	}
	if _, err := db.ExecContext(ctx, bookingsDDL); err != nil {
		return fmt.Errorf("create %s table: %w", BookingsTable, err)
	}
	return nil
}
