package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"rentscout/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestListPropertiesQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"properties":[{"id":1},{"id":2},{"id":3}],"total_count":25,"limit":10,"offset":0}`))
	}))
	defer srv.Close()

	f := models.Filter{
		MinPrice:    floatPtr(500),
		MaxBedrooms: intPtr(2),
		Outcode:     "SW1A",
	}

	c := New(srv.URL, srv.Client(), nil)
	page, err := c.ListProperties(context.Background(), f, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if gotQuery.Get("min_price") != "500" {
		t.Fatalf("expected min_price=500, got %q", gotQuery.Get("min_price"))
	}
	if gotQuery.Get("max_bedrooms") != "2" {
		t.Fatalf("expected max_bedrooms=2, got %q", gotQuery.Get("max_bedrooms"))
	}
	if gotQuery.Get("outcode") != "SW1A" {
		t.Fatalf("expected outcode=SW1A, got %q", gotQuery.Get("outcode"))
	}
	if gotQuery.Get("limit") != "10" || gotQuery.Get("offset") != "0" {
		t.Fatalf("expected limit=10 offset=0, got limit=%q offset=%q", gotQuery.Get("limit"), gotQuery.Get("offset"))
	}

	// Absent fields must be omitted entirely, not sent as sentinels.
	for _, absent := range []string{"max_price", "min_bedrooms", "property_type", "furnishing_type", "search_query"} {
		if _, ok := gotQuery[absent]; ok {
			t.Fatalf("unconstrained field %s leaked into the query: %v", absent, gotQuery)
		}
	}

	if len(page.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(page.Properties))
	}
	if page.TotalCount != 25 || page.Limit != 10 || page.Offset != 0 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
}

func TestListPropertiesRejectsNegativeBounds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	if _, err := c.ListProperties(context.Background(), models.Filter{}, -1, 0); err == nil {
		t.Fatalf("expected error for negative limit")
	}
	if _, err := c.ListProperties(context.Background(), models.Filter{}, 10, -5); err == nil {
		t.Fatalf("expected error for negative offset")
	}
	if calls != 0 {
		t.Fatalf("expected validation before I/O, saw %d calls", calls)
	}
}

func TestStarThenUnstarIssuesTwoAuthorizedCalls(t *testing.T) {
	type call struct {
		method, path, auth string
	}
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path, r.Header.Get("Authorization")})
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{access: "tok"})
	ctx := context.Background()
	if err := c.Star(ctx, 7); err != nil {
		t.Fatalf("star failed: %v", err)
	}
	if err := c.Unstar(ctx, 7); err != nil {
		t.Fatalf("unstar failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", len(calls))
	}
	if calls[0].path != "/properties/7/star" || calls[1].path != "/properties/7/unstar" {
		t.Fatalf("unexpected paths: %+v", calls)
	}
	for _, cl := range calls {
		if cl.method != http.MethodPost {
			t.Fatalf("expected POST, got %s", cl.method)
		}
		if cl.auth != "Bearer tok" {
			t.Fatalf("expected authorized call, got %q", cl.auth)
		}
	}
}

func TestMyRatingNullVote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"vote_type":null,"voted_at":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{access: "tok"})
	r, err := c.MyRating(context.Background(), 3)
	if err != nil {
		t.Fatalf("my-rating failed: %v", err)
	}
	if r.VoteType != "" {
		t.Fatalf("expected empty vote for null, got %q", r.VoteType)
	}
}

func TestSetStatusPayload(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"user_id":1,"property_id":9,"status":"viewing","status_updated_at":"2025-06-01","created_at":"2025-06-01"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), staticTokens{access: "tok"})
	rec, err := c.SetStatus(context.Background(), 9, models.StatusViewing, "booked for saturday")
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if rec.Status != models.StatusViewing {
		t.Fatalf("expected viewing status back, got %s", rec.Status)
	}
	want := `{"status":"viewing","comment":"booked for saturday"}`
	if gotBody != want {
		t.Fatalf("expected body %s, got %s", want, gotBody)
	}
}
