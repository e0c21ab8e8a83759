package service

import (
	"sync"
	"sync/atomic"

	"busline/internal/domain"
	"busline/internal/registry"
)

// MockSeatInventory is a mock implementation of SeatInventory.
type MockSeatInventory struct {
	mu    sync.Mutex
	buses map[int]*domain.Bus

	// Counters for verification
	GetCallCount     int32
	ReserveCallCount int32
	ReleaseCallCount int32

	// Error injection
	GetError     error
	ReserveError error
	ReleaseError error
}

// NewMockSeatInventory creates a new mock seat inventory.
func NewMockSeatInventory() *MockSeatInventory {
	return &MockSeatInventory{
		buses: make(map[int]*domain.Bus),
	}
}

// AddBus adds a bus to the mock inventory.
func (m *MockSeatInventory) AddBus(bus domain.Bus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buses[bus.No] = &bus
}

func (m *MockSeatInventory) Get(busNo int) (*domain.Bus, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bus, ok := m.buses[busNo]
	if !ok {
		return nil, registry.ErrBusNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *bus
	return &copy, nil
}

func (m *MockSeatInventory) TryReserveSeats(busNo, seats int) (bool, error) {
	atomic.AddInt32(&m.ReserveCallCount, 1)
	if m.ReserveError != nil {
		return false, m.ReserveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bus, ok := m.buses[busNo]
	if !ok {
		return false, registry.ErrBusNotFound
	}
	if bus.BookedSeats+seats > bus.Capacity {
		return false, nil
	}
	bus.BookedSeats += seats
	return true, nil
}

func (m *MockSeatInventory) ReleaseSeats(busNo, seats int) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	if m.ReleaseError != nil {
		return m.ReleaseError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bus, ok := m.buses[busNo]
	if !ok {
		return registry.ErrBusNotFound
	}
	bus.BookedSeats -= seats
	if bus.BookedSeats < 0 {
		bus.BookedSeats = 0
	}
	return nil
}

// BookedSeats returns the booked count for test assertions.
func (m *MockSeatInventory) BookedSeats(busNo int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if bus, ok := m.buses[busNo]; ok {
		return bus.BookedSeats
	}
	return 0
}
