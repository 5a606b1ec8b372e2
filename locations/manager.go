package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rentscout/api"
	"rentscout/models"
	"rentscout/storage"
)

const blobKey = "key_locations"

// routingAPI is the slice of the API client the manager needs. It is backed
// by the routing HTTP client, whose deadline allows for slow matrix lookups.
type routingAPI interface {
	Geocode(ctx context.Context, address string) (*models.Coordinate, error)
	TravelTimes(ctx context.Context, propertyID int, destinations []models.KeyLocation) ([]models.TravelTime, error)
}

// Manager keeps the user's key locations in local storage. Every saved entry
// carries resolved coordinates: an address is geocoded before anything is
// written, so a failed lookup leaves the stored set untouched.
type Manager struct {
	api   routingAPI
	blobs storage.Store
}

func New(client routingAPI, blobs storage.Store) *Manager {
	return &Manager{api: client, blobs: blobs}
}

// List returns the saved key locations, oldest first. A corrupt blob is
// logged, cleared, and treated as empty.
func (m *Manager) List(ctx context.Context) ([]models.KeyLocation, error) {
	raw, err := m.blobs.Get(blobKey)
	if err != nil {
		return nil, fmt.Errorf("read key locations: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var locs []models.KeyLocation
	if err := json.Unmarshal(raw, &locs); err != nil {
		log.Printf("Discarding corrupt key locations blob: %v", err)
		if derr := m.blobs.Delete(blobKey); derr != nil {
			log.Printf("Failed to clear corrupt key locations blob: %v", derr)
		}
		return nil, nil
	}
	return locs, nil
}

// Add geocodes the address and saves it under the given label. Nothing is
// persisted unless the address resolves.
func (m *Manager) Add(ctx context.Context, label, address string) (*models.KeyLocation, error) {
	coord, err := m.api.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}

	locs, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	loc := models.KeyLocation{
		ID:        uuid.New(),
		Label:     label,
		Address:   address,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		CreatedAt: time.Now().UTC(),
	}
	locs = append(locs, loc)

	if err := m.save(locs); err != nil {
		return nil, err
	}
	return &loc, nil
}

// TravelTimes computes travel times from the property to every saved
// location. A nil slice with a nil error means there is nothing saved yet.
// The matrix endpoint accepts at most MaxTravelDestinations targets, so a
// larger set is truncated to the oldest entries.
func (m *Manager) TravelTimes(ctx context.Context, propertyID int) ([]models.TravelTime, error) {
	locs, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, nil
	}
	if len(locs) > api.MaxTravelDestinations {
		locs = locs[:api.MaxTravelDestinations]
	}
	return m.api.TravelTimes(ctx, propertyID, locs)
}

// Remove deletes the location with the given id. Unknown ids are a no-op.
func (m *Manager) Remove(ctx context.Context, id uuid.UUID) error {
	locs, err := m.List(ctx)
	if err != nil {
		return err
	}

	kept := locs[:0]
	for _, l := range locs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(locs) {
		return nil
	}
	return m.save(kept)
}

func (m *Manager) save(locs []models.KeyLocation) error {
	raw, err := json.Marshal(locs)
	if err != nil {
		return fmt.Errorf("encode key locations: %w", err)
	}
	if err := m.blobs.Put(blobKey, raw); err != nil {
		return fmt.Errorf("save key locations: %w", err)
	}
	return nil
}
