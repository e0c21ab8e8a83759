package app

import (
	"log"

	"busline/internal/domain"
	"busline/internal/registry"
)

// SeedFleet registers the demo fleet. Registration happens once at startup
// against an empty registry, so duplicate errors are not expected.
func SeedFleet(reg *registry.Registry) error {
	fleet := []domain.Bus{
		{No: 101, AC: true, Capacity: 40, From: "Delhi", To: "Jaipur", CostPerSeat: 450, SafetyRating: 5, ImagePath: "images/bus1.jpg"},
		{No: 102, AC: false, Capacity: 35, From: "Delhi", To: "Agra", CostPerSeat: 350, SafetyRating: 4, ImagePath: "images/bus2.jpg"},
		{No: 103, AC: true, Capacity: 45, From: "Jaipur", To: "Udaipur", CostPerSeat: 500, SafetyRating: 3, ImagePath: "images/bus3.jpg"},
		{No: 104, AC: true, Capacity: 35, From: "Delhi", To: "Manali", CostPerSeat: 1000, SafetyRating: 5, ImagePath: "images/bus4.jpg"},
	}

	for _, bus := range fleet {
		if _, err := reg.AddBus(bus); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d buses", len(fleet))
	return nil
}
