package locations

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"rentscout/models"
	"rentscout/storage"
)

type fakeGeocoder struct {
	calls       int
	err         error
	coord       models.Coordinate
	matrixCalls int
	matrixDests []models.KeyLocation
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c := f.coord
	c.Address = address
	return &c, nil
}

func (f *fakeGeocoder) TravelTimes(ctx context.Context, propertyID int, destinations []models.KeyLocation) ([]models.TravelTime, error) {
	f.matrixCalls++
	f.matrixDests = destinations
	times := make([]models.TravelTime, len(destinations))
	for i, d := range destinations {
		times[i] = models.TravelTime{Destination: d.Label, TravelTimeMinutes: float64(10 + i)}
	}
	return times, nil
}

func TestAddResolvesBeforeSaving(t *testing.T) {
	geo := &fakeGeocoder{coord: models.Coordinate{Latitude: 51.5034, Longitude: -0.1276}}
	m := New(geo, storage.NewMemStore())

	loc, err := m.Add(context.Background(), "Work", "10 Downing Street")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if loc.Latitude != 51.5034 || loc.Longitude != -0.1276 {
		t.Fatalf("expected resolved coordinates, got %v/%v", loc.Latitude, loc.Longitude)
	}
	if loc.Label != "Work" || loc.Address != "10 Downing Street" {
		t.Fatalf("unexpected location %+v", loc)
	}
	if loc.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}

	listed, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != loc.ID {
		t.Fatalf("expected the saved location, got %v", listed)
	}
}

func TestAddFailedGeocodePersistsNothing(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("address not found")}
	m := New(geo, storage.NewMemStore())

	if _, err := m.Add(context.Background(), "Gym", "no such place"); err == nil {
		t.Fatal("expected geocode failure to surface")
	}
	if geo.calls != 1 {
		t.Fatalf("expected 1 geocode call, got %d", geo.calls)
	}

	listed, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected nothing persisted after failure, got %v", listed)
	}
}

func TestRemove(t *testing.T) {
	geo := &fakeGeocoder{coord: models.Coordinate{Latitude: 1, Longitude: 2}}
	m := New(geo, storage.NewMemStore())
	ctx := context.Background()

	a, _ := m.Add(ctx, "Work", "somewhere")
	b, _ := m.Add(ctx, "School", "elsewhere")

	if err := m.Remove(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	listed, _ := m.List(ctx)
	if len(listed) != 1 || listed[0].ID != b.ID {
		t.Fatalf("expected only %v to remain, got %v", b.ID, listed)
	}

	// Unknown ids are a no-op.
	if err := m.Remove(ctx, uuid.New()); err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
	listed, _ = m.List(ctx)
	if len(listed) != 1 {
		t.Fatalf("expected set untouched, got %v", listed)
	}
}

func TestListClearsCorruptBlob(t *testing.T) {
	blobs := storage.NewMemStore()
	ctx := context.Background()
	if err := blobs.Put("key_locations", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := New(&fakeGeocoder{}, blobs)
	listed, err := m.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected corrupt blob treated as empty, got %v", listed)
	}

	raw, err := blobs.Get("key_locations")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected corrupt blob cleared, still stored: %q", raw)
	}
}

func TestListEmptyStore(t *testing.T) {
	m := New(&fakeGeocoder{}, storage.NewMemStore())
	listed, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed != nil {
		t.Fatalf("expected no locations, got %v", listed)
	}
}

func TestTravelTimesWithoutLocationsSkipsTheAPI(t *testing.T) {
	geo := &fakeGeocoder{}
	m := New(geo, storage.NewMemStore())

	times, err := m.TravelTimes(context.Background(), 42)
	if err != nil {
		t.Fatalf("travel times: %v", err)
	}
	if times != nil {
		t.Fatalf("expected nil times for an empty set, got %v", times)
	}
	if geo.matrixCalls != 0 {
		t.Fatalf("expected no matrix call, got %d", geo.matrixCalls)
	}
}

func TestTravelTimesTruncatesToDestinationCap(t *testing.T) {
	geo := &fakeGeocoder{coord: models.Coordinate{Latitude: 1, Longitude: 2}}
	m := New(geo, storage.NewMemStore())
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if _, err := m.Add(ctx, string(rune('A'+i)), "addr"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	times, err := m.TravelTimes(ctx, 7)
	if err != nil {
		t.Fatalf("travel times: %v", err)
	}
	if len(times) != 25 {
		t.Fatalf("expected 25 results, got %d", len(times))
	}
	if len(geo.matrixDests) != 25 {
		t.Fatalf("expected destinations truncated to 25, got %d", len(geo.matrixDests))
	}
	if geo.matrixDests[0].Label != "A" {
		t.Fatalf("expected the oldest entries kept, first was %q", geo.matrixDests[0].Label)
	}
}
