package views

import (
	"fmt"
	"strings"
	"time"

	"rentscout/models"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return s[:max-1] + "…"
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		width = 40
	}
	var lines []string
	words := strings.Fields(text)
	var line string
	for _, word := range words {
		if len(line)+len(word)+1 > width {
			lines = append(lines, line)
			line = word
		} else {
			if line != "" {
				line += " "
			}
			line += word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func formatPrice(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("£%s pcm", groupThousands(int(*p)))
}

func groupThousands(n int) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return groupThousands(n/1000) + fmt.Sprintf(",%03d", n%1000)
}

func formatCount(n *int) string {
	if n == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *n)
}

func formatTravelTime(t models.TravelTime) string {
	return fmt.Sprintf("%-20s %4.0f min", truncate(t.Destination, 20), t.TravelTimeMinutes)
}

// formatDate renders the date strings the API hands back, which arrive as
// RFC 3339 timestamps or bare YYYY-MM-DD dates.
func formatDate(s string) string {
	if s == "" {
		return "—"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2 Jan 2006")
		}
	}
	return s
}
