package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate is a geocoded point as returned by the routing service.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// KeyLocation is a user-named address resolved to coordinates, used as a
// destination for travel-time lookups.
type KeyLocation struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// TravelTime is one row of a travel-times response, in destination order.
type TravelTime struct {
	Destination       string  `json:"destination"`
	TravelTimeMinutes float64 `json:"travel_time_minutes"`
	TravelTimeSeconds int     `json:"travel_time_seconds"`
}
