package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filter holds the active search constraints. A nil or empty field means
// unconstrained and is omitted from requests entirely, never sent as a
// sentinel value.
type Filter struct {
	Query          string
	MinPrice       *float64
	MaxPrice       *float64
	MinBedrooms    *int
	MaxBedrooms    *int
	PropertyType   string
	FurnishingType string
	Outcode        string
}

func (f Filter) Empty() bool {
	return f.Query == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinBedrooms == nil && f.MaxBedrooms == nil &&
		f.PropertyType == "" && f.FurnishingType == "" && f.Outcode == ""
}

// Values encodes only the present fields as query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set("search_query", f.Query)
	}
	if f.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.MinBedrooms != nil {
		v.Set("min_bedrooms", strconv.Itoa(*f.MinBedrooms))
	}
	if f.MaxBedrooms != nil {
		v.Set("max_bedrooms", strconv.Itoa(*f.MaxBedrooms))
	}
	if f.PropertyType != "" {
		v.Set("property_type", f.PropertyType)
	}
	if f.FurnishingType != "" {
		v.Set("furnishing_type", f.FurnishingType)
	}
	if f.Outcode != "" {
		v.Set("outcode", f.Outcode)
	}
	return v
}

// Summary renders the active constraints for status lines and logs.
func (f Filter) Summary() string {
	if f.Empty() {
		return "no filters"
	}

	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("%q", f.Query))
	}
	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("£%.0f-%.0f", *f.MinPrice, *f.MaxPrice))
	case f.MinPrice != nil:
		parts = append(parts, fmt.Sprintf("£%.0f+", *f.MinPrice))
	case f.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("up to £%.0f", *f.MaxPrice))
	}
	switch {
	case f.MinBedrooms != nil && f.MaxBedrooms != nil:
		parts = append(parts, fmt.Sprintf("%d-%d bed", *f.MinBedrooms, *f.MaxBedrooms))
	case f.MinBedrooms != nil:
		parts = append(parts, fmt.Sprintf("%d+ bed", *f.MinBedrooms))
	case f.MaxBedrooms != nil:
		parts = append(parts, fmt.Sprintf("up to %d bed", *f.MaxBedrooms))
	}
	if f.PropertyType != "" {
		parts = append(parts, f.PropertyType)
	}
	if f.FurnishingType != "" {
		parts = append(parts, f.FurnishingType)
	}
	if f.Outcode != "" {
		parts = append(parts, f.Outcode)
	}
	return strings.Join(parts, ", ")
}
