package service

import "errors"

var (
	// ErrInvalidPassengerName is returned when the passenger name is empty.
	ErrInvalidPassengerName = errors.New("invalid passenger name")

	// ErrInvalidSeatCount is returned when the seat quantity is not positive.
	ErrInvalidSeatCount = errors.New("invalid seat count")

	// ErrNotEnoughSeats is returned when a booking would exceed the bus capacity.
	ErrNotEnoughSeats = errors.New("not enough seats available")

	// ErrBookingNotFound is returned when no ledger record matches the request.
	ErrBookingNotFound = errors.New("no matching booking found")
)
