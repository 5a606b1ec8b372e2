package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentscout/models"
)

func TestGeocodeEmptyAddressNoIO(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, err := c.Geocode(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("expected ErrEmptyAddress, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network call, got %d", calls)
	}
}

func TestGeocodeResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude":51.5034,"longitude":-0.1276,"address":"10 Downing Street, London"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{access: "tok"})
	coord, err := c.Geocode(context.Background(), "10 Downing Street, London")
	if err != nil {
		t.Fatalf("geocode failed: %v", err)
	}
	if coord.Latitude != 51.5034 || coord.Longitude != -0.1276 {
		t.Fatalf("unexpected coordinate: %+v", coord)
	}
}

func TestGeocodeUnresolvableSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Could not geocode address"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, err := c.Geocode(context.Background(), "nowhere at all")

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Message != "Could not geocode address" {
		t.Fatalf("unexpected message %q", he.Message)
	}
}

func TestTravelTimesDestinationCap(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	dests := make([]models.KeyLocation, MaxTravelDestinations+1)
	c := New(srv.URL, srv.Client(), nil)
	if _, err := c.TravelTimes(context.Background(), 1, dests); err == nil {
		t.Fatalf("expected cap error for %d destinations", len(dests))
	}
	if calls != 0 {
		t.Fatalf("expected cap check before I/O, saw %d calls", calls)
	}
}

func TestTravelTimesRequestAndOrder(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`[
			{"destination":"Work","travel_time_minutes":15.5,"travel_time_seconds":930},
			{"destination":"School","travel_time_minutes":24,"travel_time_seconds":1440}
		]`))
	}))
	defer srv.Close()

	dests := []models.KeyLocation{
		{Label: "Work", Latitude: 53.48, Longitude: -2.24},
		{Label: "School", Latitude: 53.8, Longitude: -1.55},
	}

	c := New(srv.URL, srv.Client(), staticTokens{access: "tok"})
	times, err := c.TravelTimes(context.Background(), 12, dests)
	if err != nil {
		t.Fatalf("travel times failed: %v", err)
	}

	var req struct {
		PropertyID   int `json:"property_id"`
		Destinations []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Label     string  `json:"label"`
		} `json:"destinations"`
	}
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("bad request body: %v", err)
	}
	if req.PropertyID != 12 {
		t.Fatalf("expected property_id 12, got %d", req.PropertyID)
	}
	if len(req.Destinations) != 2 || req.Destinations[0].Label != "Work" {
		t.Fatalf("unexpected destinations: %+v", req.Destinations)
	}

	if len(times) != 2 {
		t.Fatalf("expected 2 results, got %d", len(times))
	}
	if times[0].Destination != "Work" || times[1].Destination != "School" {
		t.Fatalf("order not preserved: %+v", times)
	}
	if times[0].TravelTimeSeconds != 930 {
		t.Fatalf("expected 930 seconds, got %d", times[0].TravelTimeSeconds)
	}
}
