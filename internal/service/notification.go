package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"busline/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationBusAdded         NotificationType = "BUS_ADDED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type      NotificationType
	Recipient string
	Message   string
	CreatedAt time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - SMS client for booking confirmations
	// - Email client for receipts
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingConfirmed notifies the passenger that their booking committed.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	n := Notification{
		Type:      NotificationBookingConfirmed,
		Recipient: booking.PassengerName,
		Message: fmt.Sprintf("Booking confirmed for %s: %d seat(s) on bus %d, total %.2f",
			booking.PassengerName, booking.Seats, booking.BusNo, booking.TotalCost),
		CreatedAt: time.Now(),
	}
	return s.send(ctx, n)
}

// NotifyBookingCancelled notifies that seats on a bus were released.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, busNo, seats int, recordRemoved bool) error {
	msg := fmt.Sprintf("Released %d seat(s) on bus %d", seats, busNo)
	if !recordRemoved {
		msg += " (no matching booking record)"
	}
	n := Notification{
		Type:      NotificationBookingCancelled,
		Message:   msg,
		CreatedAt: time.Now(),
	}
	return s.send(ctx, n)
}

// NotifyBusAdded announces a newly registered bus.
func (s *NotificationService) NotifyBusAdded(ctx context.Context, bus *domain.Bus) error {
	n := Notification{
		Type:      NotificationBusAdded,
		Message:   fmt.Sprintf("Bus %d added: %s to %s, %d seats", bus.No, bus.From, bus.To, bus.Capacity),
		CreatedAt: time.Now(),
	}
	return s.send(ctx, n)
}

// send delivers a notification. Currently logs; swap in real channels here.
func (s *NotificationService) send(_ context.Context, n Notification) error {
	if n.Recipient != "" {
		log.Printf("[NOTIFICATION] %s -> %s: %s", n.Type, n.Recipient, n.Message)
	} else {
		log.Printf("[NOTIFICATION] %s: %s", n.Type, n.Message)
	}
	return nil
}
