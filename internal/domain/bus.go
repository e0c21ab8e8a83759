package domain

// Bus represents a bookable bus with a fixed seat capacity and route metadata.
// BookedSeats is the only mutable field; it is owned by the registry and
// changes only through the registry's reserve and release operations.
type Bus struct {
	No           int
	AC           bool
	Capacity     int
	From         string
	To           string
	BookedSeats  int
	CostPerSeat  float64
	SafetyRating int // 1 to 5
	ImagePath    string
}

// AvailableSeats returns the number of seats still open for booking.
func (b *Bus) AvailableSeats() int {
	return b.Capacity - b.BookedSeats
}
