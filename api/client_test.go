package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens struct {
	access  string
	refresh string
}

func (s staticTokens) AccessToken() string  { return s.access }
func (s staticTokens) RefreshToken() string { return s.refresh }

func TestGetAttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{access: "tok-123"})
	var out struct{}
	if err := c.Get(context.Background(), "/users/profile", &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestGetWithoutTokensOmitsAuthHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	var out struct{}
	if err := c.Get(context.Background(), "/health", &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no auth header, got %q", got)
	}
}

func TestErrorDetailEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Property not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, err := c.GetProperty(context.Background(), 42)
	if err == nil {
		t.Fatalf("expected error")
	}

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if he.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", he.Status)
	}
	if he.Message != "Property not found" {
		t.Fatalf("expected detail message, got %q", he.Message)
	}
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound")
	}
	if IsNetwork(err) {
		t.Fatalf("HTTP error misclassified as network failure")
	}
}

func TestErrorNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	err := c.Health(context.Background())

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Message != "upstream exploded" {
		t.Fatalf("expected raw body as message, got %q", he.Message)
	}
}

func TestNetworkFailureClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := New(srv.URL, &http.Client{}, nil)
	err := c.Health(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if !IsNetwork(err) {
		t.Fatalf("expected network classification, got %v", err)
	}
	var he *HTTPError
	if errors.As(err, &he) {
		t.Fatalf("transport failure should not carry an HTTP status")
	}
}

func TestDescriptionTextFlattensHTML(t *testing.T) {
	html := `<div><p>Bright two-bed flat</p><p>Close to the &amp; station</p><br>No chain</div>`
	got := DescriptionText(html)
	want := "Bright two-bed flat\nClose to the & station\nNo chain"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDescriptionTextPassthrough(t *testing.T) {
	if got := DescriptionText("plain description"); got != "plain description" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := DescriptionText(""); got != "" {
		t.Fatalf("expected empty passthrough, got %q", got)
	}
}
