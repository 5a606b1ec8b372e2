package models

import (
	"encoding/json"
)

// Property is a single listing as returned by the rentals API. Most fields
// are optional on the wire; numeric absences are pointers, string absences
// decode to "".
type Property struct {
	ID           int      `json:"id"`
	RightmoveID  string   `json:"rightmove_id"`
	ListingTitle string   `json:"listing_title"`
	ListingURL   string   `json:"listing_url"`
	Incode       string   `json:"incode"`
	Outcode      string   `json:"outcode"`
	FullAddress  string   `json:"full_address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	PropertyType   string   `json:"property_type"`
	ListingType    string   `json:"listing_type"`
	Bedrooms       *int     `json:"bedrooms"`
	Bathrooms      *int     `json:"bathrooms"`
	Size           string   `json:"size"`
	FurnishingType string   `json:"furnishing_type"`
	Amenities      []string `json:"amenities"`

	Price        *float64        `json:"price"`
	Deposit      *float64        `json:"deposit"`
	PriceHistory json.RawMessage `json:"price_history"`

	Tenure                       string   `json:"tenure"`
	CouncilTaxBand               string   `json:"council_tax_band"`
	CouncilTaxExempt             *bool    `json:"council_tax_exempt"`
	YearsRemainingOnLease        *int     `json:"years_remaining_on_lease"`
	AnnualGroundRent             *float64 `json:"annual_ground_rent"`
	AnnualServiceCharge          *float64 `json:"annual_service_charge"`
	GroundRentPercentageIncrease *float64 `json:"ground_rent_percentage_increase"`

	TextDescription          string `json:"text_description"`
	FormattedHTMLDescription string `json:"formatted_html_description"`

	Images     []string        `json:"images"`
	Floorplans []string        `json:"floorplans"`
	Brochures  []string        `json:"brochures"`
	EPC        json.RawMessage `json:"epc"`

	AgentName        string `json:"agent_name"`
	AgentLogo        string `json:"agent_logo"`
	AgentPhone       string `json:"agent_phone"`
	AgentAddress     string `json:"agent_address"`
	AgentProfileURL  string `json:"agent_profile_url"`
	AgentDescription string `json:"agent_description"`
	AgentListingsURL string `json:"agent_listings_url"`

	Sold                bool   `json:"sold"`
	Removed             bool   `json:"removed"`
	DisplayStatus       string `json:"display_status"`
	ListingUpdateReason string `json:"listing_update_reason"`

	FirstVisibleDate  string `json:"first_visible_date"`
	ListingUpdateDate string `json:"listing_update_date"`

	NearestSchools json.RawMessage `json:"nearest_schools"`

	FirstScrapedAt string `json:"first_scraped_at"`
	LastScrapedAt  string `json:"last_scraped_at"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`

	// Rating aggregate, computed server-side.
	Upvotes    int     `json:"upvotes"`
	Downvotes  int     `json:"downvotes"`
	Score      float64 `json:"score"`
	TotalVotes int     `json:"total_votes"`
}

// PropertyPage is one page of listing results. It is replaced wholesale on
// every successful fetch, never patched in place.
type PropertyPage struct {
	Properties []Property `json:"properties"`
	TotalCount int        `json:"total_count"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// FeedPage is a personalized listing page plus the preference echo the feed
// endpoint returns alongside results.
type FeedPage struct {
	Properties      []Property      `json:"properties"`
	TotalCount      int             `json:"total_count"`
	Limit           int             `json:"limit"`
	Offset          int             `json:"offset"`
	UserPreferences json.RawMessage `json:"user_preferences"`
}

type PropertyStatus string

const (
	StatusInterested PropertyStatus = "interested"
	StatusViewing    PropertyStatus = "viewing"
	StatusOffer      PropertyStatus = "offer"
	StatusAccepted   PropertyStatus = "accepted"
)

// StatusRecord is the per-user tracking status of a property.
type StatusRecord struct {
	UserID          int            `json:"user_id"`
	PropertyID      int            `json:"property_id"`
	Status          PropertyStatus `json:"status"`
	StatusUpdatedAt string         `json:"status_updated_at"`
	CreatedAt       string         `json:"created_at"`
}
