package registry

import (
	"strings"
	"sync"

	"busline/internal/domain"
)

// Registry owns the bus catalog and is the sole authority for mutating
// booked seat counts. Reserve and release are serialized per bus, so the
// invariant 0 <= BookedSeats <= Capacity holds at all observable points.
type Registry struct {
	mu    sync.RWMutex
	buses map[int]*busEntry
	order []int
}

// busEntry pairs a bus with its own lock. The per-bus lock serializes the
// check-and-increment in TryReserveSeats against concurrent callers.
type busEntry struct {
	mu  sync.Mutex
	bus domain.Bus
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		buses: make(map[int]*busEntry),
	}
}

// AddBus registers a new bus. The booked seat count always starts at zero,
// regardless of what the caller put in the struct.
func (r *Registry) AddBus(bus domain.Bus) (*domain.Bus, error) {
	if err := validateBus(bus); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buses[bus.No]; ok {
		return nil, ErrDuplicateBusNo
	}

	bus.BookedSeats = 0
	r.buses[bus.No] = &busEntry{bus: bus}
	r.order = append(r.order, bus.No)

	added := bus
	return &added, nil
}

// Get retrieves a bus by number. The returned value is a copy; callers
// cannot mutate registry state through it.
func (r *Registry) Get(busNo int) (*domain.Bus, error) {
	entry, err := r.lookup(busNo)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	bus := entry.bus
	return &bus, nil
}

// List returns copies of all buses in insertion order, for stable display.
func (r *Registry) List() []*domain.Bus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Bus, 0, len(r.order))
	for _, no := range r.order {
		entry := r.buses[no]
		entry.mu.Lock()
		bus := entry.bus
		entry.mu.Unlock()
		result = append(result, &bus)
	}
	return result
}

// AvailableSeats returns the number of unbooked seats on the given bus.
func (r *Registry) AvailableSeats(busNo int) (int, error) {
	bus, err := r.Get(busNo)
	if err != nil {
		return 0, err
	}
	return bus.AvailableSeats(), nil
}

// TryReserveSeats atomically checks capacity and increments the booked seat
// count. It returns false, without mutating anything, when the reservation
// would exceed capacity. Two concurrent calls on the same bus never both
// succeed if their combined request would overflow it.
func (r *Registry) TryReserveSeats(busNo, seats int) (bool, error) {
	if seats <= 0 {
		return false, ErrInvalidSeatCount
	}

	entry, err := r.lookup(busNo)
	if err != nil {
		return false, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.bus.BookedSeats+seats > entry.bus.Capacity {
		return false, nil
	}
	entry.bus.BookedSeats += seats
	return true, nil
}

// ReleaseSeats decrements the booked seat count, clamped at zero. Releasing
// more seats than are booked is tolerated, not rejected; the count never
// goes negative.
func (r *Registry) ReleaseSeats(busNo, seats int) error {
	if seats <= 0 {
		return ErrInvalidSeatCount
	}

	entry, err := r.lookup(busNo)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.bus.BookedSeats -= seats
	if entry.bus.BookedSeats < 0 {
		entry.bus.BookedSeats = 0
	}
	return nil
}

// lookup finds the entry for a bus number. Entries are never removed, so
// the returned pointer stays valid after the registry lock is dropped.
func (r *Registry) lookup(busNo int) (*busEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.buses[busNo]
	if !ok {
		return nil, ErrBusNotFound
	}
	return entry, nil
}

// validateBus validates the immutable attributes of a new bus.
func validateBus(bus domain.Bus) error {
	if bus.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if bus.CostPerSeat < 0 {
		return ErrInvalidCostPerSeat
	}
	if bus.SafetyRating < 1 || bus.SafetyRating > 5 {
		return ErrInvalidSafetyRating
	}
	if strings.TrimSpace(bus.From) == "" || strings.TrimSpace(bus.To) == "" {
		return ErrInvalidRoute
	}
	return nil
}
