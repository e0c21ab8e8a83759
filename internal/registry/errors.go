package registry

import "errors"

var (
	// ErrBusNotFound is returned when the requested bus number is not registered.
	ErrBusNotFound = errors.New("bus not found")

	// ErrDuplicateBusNo is returned when registering a bus number that already exists.
	ErrDuplicateBusNo = errors.New("bus number already registered")

	// ErrInvalidCapacity is returned when a bus is registered with a non-positive capacity.
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// ErrInvalidCostPerSeat is returned when the cost per seat is negative.
	ErrInvalidCostPerSeat = errors.New("cost per seat must not be negative")

	// ErrInvalidSafetyRating is returned when the safety rating is outside 1-5.
	ErrInvalidSafetyRating = errors.New("safety rating must be between 1 and 5")

	// ErrInvalidRoute is returned when origin or destination is empty.
	ErrInvalidRoute = errors.New("origin and destination must not be empty")

	// ErrInvalidSeatCount is returned when a seat quantity is not positive.
	ErrInvalidSeatCount = errors.New("seat count must be positive")
)
