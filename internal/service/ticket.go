package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

// TicketService renders PDF tickets for committed bookings.
type TicketService struct {
	inventory SeatInventory
	ledger    *BookingService
}

// NewTicketService creates a new TicketService.
func NewTicketService(inventory SeatInventory, ledger *BookingService) *TicketService {
	return &TicketService{
		inventory: inventory,
		ledger:    ledger,
	}
}

// GenerateTicket renders a PDF ticket for the first ledger record matching
// the passenger name, bus number and seat count. It returns the PDF bytes
// and a suggested filename.
func (s *TicketService) GenerateTicket(passengerName string, busNo, seats int) ([]byte, string, error) {
	booking, ok := s.ledger.FindBooking(passengerName, busNo, seats)
	if !ok {
		return nil, "", ErrBookingNotFound
	}

	bus, err := s.inventory.Get(busNo)
	if err != nil {
		return nil, "", err
	}

	ticketID := uuid.New().String()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	acLabel := "No"
	if bus.AC {
		acLabel = "Yes"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket ID  : %s", ticketID),
		fmt.Sprintf("Passenger  : %s", booking.PassengerName),
		fmt.Sprintf("Bus No     : %d", booking.BusNo),
		fmt.Sprintf("Route      : %s -> %s", bus.From, bus.To),
		fmt.Sprintf("AC         : %s", acLabel),
		fmt.Sprintf("Seats      : %d", booking.Seats),
		fmt.Sprintf("Total Cost : %.2f", booking.TotalCost),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket at departure. Seats are not individually assigned.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%d_%s.pdf", booking.BusNo, safeFilenamePart(booking.PassengerName))
	return buf.Bytes(), filename, nil
}

// safeFilenamePart strips characters that do not belong in a filename.
func safeFilenamePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, s)
}
