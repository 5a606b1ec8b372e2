package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"rentscout/models"
)

// MaxTravelDestinations is the routing API's per-request destination cap.
const MaxTravelDestinations = 25

type geocodeRequest struct {
	Address string `json:"address"`
}

// Geocode resolves a free-text address to a coordinate. An unresolvable
// address comes back as a validation-class HTTPError.
func (c *Client) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	var coord models.Coordinate
	if err := c.do(ctx, http.MethodPost, "/routing/geocode", nil, geocodeRequest{Address: address}, &coord, authAccess); err != nil {
		return nil, err
	}
	return &coord, nil
}

type travelDestination struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
}

type travelTimesRequest struct {
	PropertyID   int                 `json:"property_id"`
	Destinations []travelDestination `json:"destinations"`
}

// TravelTimes computes travel times from a property to each destination.
// Results come back in destination order.
func (c *Client) TravelTimes(ctx context.Context, propertyID int, destinations []models.KeyLocation) ([]models.TravelTime, error) {
	if len(destinations) > MaxTravelDestinations {
		return nil, fmt.Errorf("travel times: %d destinations exceeds the %d maximum", len(destinations), MaxTravelDestinations)
	}

	req := travelTimesRequest{PropertyID: propertyID}
	for _, d := range destinations {
		req.Destinations = append(req.Destinations, travelDestination{
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			Label:     d.Label,
		})
	}

	var times []models.TravelTime
	if err := c.do(ctx, http.MethodPost, "/routing/travel-times", nil, req, &times, authAccess); err != nil {
		return nil, err
	}
	return times, nil
}
