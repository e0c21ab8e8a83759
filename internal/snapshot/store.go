// Package snapshot writes point-in-time copies of the fleet and booking
// ledger to PostgreSQL. It is an external collaborator of the core: the
// registry and ledger never read snapshots back, and the process does not
// depend on the database unless snapshots are enabled.
package snapshot

import (
	"context"
	"database/sql"
	"time"

	"busline/internal/domain"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Store persists snapshots. Each Save replaces the previous snapshot in a
// single transaction.
type Store struct {
	db *sql.DB
}

// NewStore creates a new snapshot Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the snapshot tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS bus_snapshot (
			bus_no        INTEGER PRIMARY KEY,
			ac            BOOLEAN NOT NULL,
			capacity      INTEGER NOT NULL,
			origin        TEXT NOT NULL,
			destination   TEXT NOT NULL,
			booked_seats  INTEGER NOT NULL,
			cost_per_seat DOUBLE PRECISION NOT NULL,
			safety_rating INTEGER NOT NULL,
			image_path    TEXT NOT NULL DEFAULT '',
			taken_at      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS booking_snapshot (
			position       INTEGER NOT NULL,
			passenger_name TEXT NOT NULL,
			bus_no         INTEGER NOT NULL,
			seats          INTEGER NOT NULL,
			total_cost     DOUBLE PRECISION NOT NULL,
			taken_at       TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the stored snapshot with the given fleet and ledger state.
// Ledger order is preserved through the position column.
func (s *Store) Save(ctx context.Context, buses []*domain.Bus, bookings []domain.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	takenAt := time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bus_snapshot`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_snapshot`); err != nil {
		return err
	}

	if err := insertBuses(ctx, tx, buses, takenAt); err != nil {
		return err
	}
	if err := insertBookings(ctx, tx, bookings, takenAt); err != nil {
		return err
	}

	return tx.Commit()
}

func insertBuses(ctx context.Context, q Querier, buses []*domain.Bus, takenAt time.Time) error {
	query := `
		INSERT INTO bus_snapshot (bus_no, ac, capacity, origin, destination, booked_seats, cost_per_seat, safety_rating, image_path, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, b := range buses {
		if _, err := q.ExecContext(ctx, query,
			b.No,
			b.AC,
			b.Capacity,
			b.From,
			b.To,
			b.BookedSeats,
			b.CostPerSeat,
			b.SafetyRating,
			b.ImagePath,
			takenAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertBookings(ctx context.Context, q Querier, bookings []domain.Booking, takenAt time.Time) error {
	query := `
		INSERT INTO booking_snapshot (position, passenger_name, bus_no, seats, total_cost, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, bk := range bookings {
		if _, err := q.ExecContext(ctx, query,
			i,
			bk.PassengerName,
			bk.BusNo,
			bk.Seats,
			bk.TotalCost,
			takenAt,
		); err != nil {
			return err
		}
	}
	return nil
}
