package views

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	if got := truncate("a very long address line", 10); got != "a very lo…" {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		950:     "950",
		1000:    "1,000",
		1850:    "1,850",
		1200000: "1,200,000",
	}
	for n, want := range cases {
		if got := groupThousands(n); got != want {
			t.Fatalf("%d: expected %q, got %q", n, want, got)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(nil); got != "—" {
		t.Fatalf("expected placeholder for missing price, got %q", got)
	}
	p := 1850.0
	if got := formatPrice(&p); got != "£1,850 pcm" {
		t.Fatalf("unexpected price %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2026-03-14T10:30:00"); got != "14 Mar 2026" {
		t.Fatalf("unexpected timestamp render %q", got)
	}
	if got := formatDate("2026-03-14"); got != "14 Mar 2026" {
		t.Fatalf("unexpected date render %q", got)
	}
	if got := formatDate(""); got != "—" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := formatDate("not a date"); got != "not a date" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	for _, l := range lines {
		if len(l) > 9 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
}
