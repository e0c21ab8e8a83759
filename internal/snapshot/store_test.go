package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"busline/internal/domain"
)

func TestSave_ReplacesSnapshotInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	buses := []*domain.Bus{
		{No: 101, AC: true, Capacity: 40, From: "Delhi", To: "Jaipur", BookedSeats: 2, CostPerSeat: 450, SafetyRating: 5, ImagePath: "images/bus1.jpg"},
		{No: 102, AC: false, Capacity: 35, From: "Delhi", To: "Agra", BookedSeats: 0, CostPerSeat: 350, SafetyRating: 4, ImagePath: "images/bus2.jpg"},
	}
	bookings := []domain.Booking{
		{PassengerName: "Asha", BusNo: 101, Seats: 2, TotalCost: 900},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bus_snapshot").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM booking_snapshot").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bus_snapshot").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bus_snapshot").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_snapshot").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewStore(db)
	if err := store.Save(context.Background(), buses, bookings); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSave_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	buses := []*domain.Bus{
		{No: 101, AC: true, Capacity: 40, From: "Delhi", To: "Jaipur", CostPerSeat: 450, SafetyRating: 5},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bus_snapshot").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM booking_snapshot").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bus_snapshot").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store := NewStore(db)
	if err := store.Save(context.Background(), buses, nil); err == nil {
		t.Fatal("expected save to fail")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bus_snapshot").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS booking_snapshot").WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
