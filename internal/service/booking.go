package service

import (
	"context"
	"strings"
	"sync"

	"busline/internal/domain"
	"busline/internal/registry"
)

// SeatInventory is the registry surface the booking ledger depends on.
// This interface allows for testing with mock implementations.
type SeatInventory interface {
	Get(busNo int) (*domain.Bus, error)
	TryReserveSeats(busNo, seats int) (bool, error)
	ReleaseSeats(busNo, seats int) error
}

// Ensure the registry implements SeatInventory.
var _ SeatInventory = (*registry.Registry)(nil)

// BookingService coordinates reservation and cancellation transactions and
// maintains the booking ledger. Seat counts change only through the
// inventory; the ledger never touches them directly.
type BookingService struct {
	inventory SeatInventory
	notifier  *NotificationService

	mu       sync.Mutex
	bookings []domain.Booking
}

// NewBookingService creates a new BookingService.
func NewBookingService(inventory SeatInventory, notifier *NotificationService) *BookingService {
	return &BookingService{
		inventory: inventory,
		notifier:  notifier,
	}
}

// BookRequest contains the parameters for booking seats.
type BookRequest struct {
	PassengerName string
	BusNo         int
	Seats         int
}

// Book reserves seats on a bus and appends a ledger record. The two phases
// must appear atomic to external observers: once the reservation succeeds,
// the slice append cannot fail, so a reserved-but-unrecorded seat is never
// observable. A capacity or not-found failure leaves both the inventory and
// the ledger untouched.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*domain.Booking, error) {
	if strings.TrimSpace(req.PassengerName) == "" {
		return nil, ErrInvalidPassengerName
	}
	if req.Seats <= 0 {
		return nil, ErrInvalidSeatCount
	}

	// Snapshot the price before reserving. CostPerSeat is immutable, so the
	// read does not race with the reservation.
	bus, err := s.inventory.Get(req.BusNo)
	if err != nil {
		return nil, err
	}

	ok, err := s.inventory.TryReserveSeats(req.BusNo, req.Seats)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEnoughSeats
	}

	booking := domain.Booking{
		PassengerName: req.PassengerName,
		BusNo:         req.BusNo,
		Seats:         req.Seats,
		TotalCost:     float64(req.Seats) * bus.CostPerSeat,
	}

	s.mu.Lock()
	s.bookings = append(s.bookings, booking)
	s.mu.Unlock()

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingConfirmed(ctx, &booking)
	}

	return &booking, nil
}

// Cancel releases seats on a bus and removes the first ledger record whose
// bus number and seat count both match. The release happens regardless of
// whether a record matches; the boolean only reports whether one was
// removed. Matching is best-effort by (bus number, seats) because bookings
// carry no identifier.
func (s *BookingService) Cancel(ctx context.Context, busNo, seats int) (bool, error) {
	if err := s.inventory.ReleaseSeats(busNo, seats); err != nil {
		return false, err
	}

	removed := s.removeFirstMatch(busNo, seats)

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingCancelled(ctx, busNo, seats, removed)
	}

	return removed, nil
}

// ListBookings returns a copy of the ledger in insertion order.
func (s *BookingService) ListBookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Booking, len(s.bookings))
	copy(result, s.bookings)
	return result
}

// FindBooking returns the first ledger record matching the passenger name,
// bus number and seat count.
func (s *BookingService) FindBooking(passengerName string, busNo, seats int) (*domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		b := s.bookings[i]
		if b.PassengerName == passengerName && b.BusNo == busNo && b.Seats == seats {
			return &b, true
		}
	}
	return nil, false
}

// removeFirstMatch removes the first record matching (busNo, seats),
// preserving the insertion order of the rest.
func (s *BookingService) removeFirstMatch(busNo, seats int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].BusNo == busNo && s.bookings[i].Seats == seats {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return true
		}
	}
	return false
}
