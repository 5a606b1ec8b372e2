package listing

import (
	"errors"
	"fmt"
	"testing"

	"rentscout/models"
)

func pageOf(t *testing.T, total int, ids ...int) *models.PropertyPage {
	t.Helper()
	props := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		props = append(props, models.Property{ID: id, ListingTitle: fmt.Sprintf("flat %d", id)})
	}
	return &models.PropertyPage{
		Properties: props,
		TotalCount: total,
		Limit:      PageSize,
		Offset:     0,
	}
}

func TestLoadPageBuildsRequest(t *testing.T) {
	c := NewController()

	req := c.LoadPage(0, models.Filter{})
	if req.Gen != 1 {
		t.Fatalf("expected gen 1, got %d", req.Gen)
	}
	if req.Limit != PageSize || req.Offset != 0 {
		t.Fatalf("expected limit %d offset 0, got %d/%d", PageSize, req.Limit, req.Offset)
	}
	if !c.Loading() {
		t.Fatal("expected loading while request is in flight")
	}

	req = c.LoadPage(3, models.Filter{})
	if req.Offset != 3*PageSize {
		t.Fatalf("expected offset %d for page 3, got %d", 3*PageSize, req.Offset)
	}
	if req.Gen != 2 {
		t.Fatalf("expected gen to advance to 2, got %d", req.Gen)
	}
}

func TestApplySuccess(t *testing.T) {
	c := NewController()
	req := c.LoadPage(0, models.Filter{})

	applied := c.Apply(Result{Gen: req.Gen, Page: pageOf(t, 25, 1, 2, 3)})
	if !applied {
		t.Fatal("expected current-generation result to apply")
	}
	if c.Loading() {
		t.Fatal("expected loading cleared after apply")
	}
	if c.ErrMsg() != "" {
		t.Fatalf("expected no error, got %q", c.ErrMsg())
	}
	if got := len(c.Page().Properties); got != 3 {
		t.Fatalf("expected 3 properties, got %d", got)
	}
	if c.TotalPages() != 3 {
		t.Fatalf("expected 3 pages for 25 results, got %d", c.TotalPages())
	}
	if c.CurrentPage() != 0 {
		t.Fatalf("expected current page 0, got %d", c.CurrentPage())
	}
}

func TestApplyFailureKeepsData(t *testing.T) {
	c := NewController()
	req := c.LoadPage(0, models.Filter{})
	c.Apply(Result{Gen: req.Gen, Page: pageOf(t, 25, 1, 2)})

	req = c.SetPage(1)
	if !c.Apply(Result{Gen: req.Gen, Err: errors.New("boom")}) {
		t.Fatal("expected failure result to apply")
	}
	if c.ErrMsg() != "boom" {
		t.Fatalf("expected error message %q, got %q", "boom", c.ErrMsg())
	}
	if c.Loading() {
		t.Fatal("expected loading cleared after failure")
	}
	if c.Page() == nil || len(c.Page().Properties) != 2 {
		t.Fatal("expected previous page data to survive a failed fetch")
	}
	if c.CurrentPage() != 0 {
		t.Fatalf("expected current page to stay 0 after failure, got %d", c.CurrentPage())
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	c := NewController()
	first := c.SetPage(0)
	second := c.SetPage(1)

	if !c.Apply(Result{Gen: second.Gen, Page: pageOf(t, 40, 11, 12)}) {
		t.Fatal("expected newest result to apply")
	}
	if c.Apply(Result{Gen: first.Gen, Page: pageOf(t, 40, 99)}) {
		t.Fatal("expected stale result to be discarded")
	}
	if got := c.Page().Properties[0].ID; got != 11 {
		t.Fatalf("expected newest page to survive, got property %d", got)
	}
	if c.CurrentPage() != 1 {
		t.Fatalf("expected current page 1, got %d", c.CurrentPage())
	}

	// A stale error is discarded just as completely.
	if c.Apply(Result{Gen: first.Gen, Err: errors.New("late failure")}) {
		t.Fatal("expected stale error to be discarded")
	}
	if c.ErrMsg() != "" {
		t.Fatalf("expected no error after stale failure, got %q", c.ErrMsg())
	}
	if c.Loading() {
		t.Fatal("expected loading untouched by stale result")
	}
}

func TestApplyFiltersResetsToFirstPage(t *testing.T) {
	c := NewController()
	req := c.LoadPage(2, models.Filter{})
	c.Apply(Result{Gen: req.Gen, Page: pageOf(t, 100, 1)})
	if c.CurrentPage() != 2 {
		t.Fatalf("expected current page 2, got %d", c.CurrentPage())
	}

	min := 900.0
	f := models.Filter{MinPrice: &min, Outcode: "E8"}
	req = c.ApplyFilters(f)
	if req.Page != 0 || req.Offset != 0 {
		t.Fatalf("expected filter change to request page 0, got page %d offset %d", req.Page, req.Offset)
	}
	if req.Filter.Outcode != "E8" {
		t.Fatalf("expected request to carry the new filter, got %+v", req.Filter)
	}

	c.Apply(Result{Gen: req.Gen, Page: pageOf(t, 4, 2)})
	if c.CurrentPage() != 0 {
		t.Fatalf("expected current page 0 after filter change, got %d", c.CurrentPage())
	}
	if c.Filters().Outcode != "E8" {
		t.Fatalf("expected stored filters updated, got %+v", c.Filters())
	}
}

func TestSetPageClampsToKnownRange(t *testing.T) {
	c := NewController()
	req := c.LoadPage(0, models.Filter{})
	c.Apply(Result{Gen: req.Gen, Page: pageOf(t, 25, 1)})

	req = c.SetPage(9)
	if req.Page != 2 {
		t.Fatalf("expected page clamped to 2 for 25 results, got %d", req.Page)
	}
	req = c.SetPage(-3)
	if req.Page != 0 {
		t.Fatalf("expected negative page clamped to 0, got %d", req.Page)
	}
}

func TestTotalPagesDerived(t *testing.T) {
	c := NewController()
	if c.TotalPages() != 0 {
		t.Fatalf("expected 0 pages before any fetch, got %d", c.TotalPages())
	}

	cases := []struct {
		total int
		pages int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{95, 10},
	}
	for _, tc := range cases {
		req := c.SetPage(0)
		c.Apply(Result{Gen: req.Gen, Page: pageOf(t, tc.total)})
		if got := c.TotalPages(); got != tc.pages {
			t.Fatalf("total %d: expected %d pages, got %d", tc.total, tc.pages, got)
		}
	}
}

func TestErrorMessageClearedOnNextRequest(t *testing.T) {
	c := NewController()
	req := c.LoadPage(0, models.Filter{})
	c.Apply(Result{Gen: req.Gen, Err: fmt.Errorf("list properties: timeout")})
	if c.ErrMsg() == "" {
		t.Fatal("expected error message after failure")
	}

	c.SetPage(0)
	if c.ErrMsg() != "" {
		t.Fatalf("expected error cleared when a new fetch starts, got %q", c.ErrMsg())
	}
}
