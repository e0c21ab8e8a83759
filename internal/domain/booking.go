package domain

// Booking ties a passenger to a number of seats on a bus. TotalCost is a
// snapshot of seats times the bus's cost per seat at booking time; it is
// never recomputed. Bookings carry no identifier of their own, so
// cancellation matches records by (bus number, seats).
type Booking struct {
	PassengerName string
	BusNo         int
	Seats         int
	TotalCost     float64
}
