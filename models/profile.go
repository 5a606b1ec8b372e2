package models

// Profile is the user's preference profile as returned by GET /users/profile.
type Profile struct {
	ID                       int      `json:"id"`
	UserID                   int      `json:"user_id"`
	Bio                      string   `json:"bio"`
	DreamPropertyDescription string   `json:"dream_property_description"`
	PreferredPriceMin        *float64 `json:"preferred_price_min"`
	PreferredPriceMax        *float64 `json:"preferred_price_max"`
	PreferredBedroomsMin     *int     `json:"preferred_bedrooms_min"`
	PreferredPropertyTypes   []string `json:"preferred_property_types"`
	PreferredLocations       []string `json:"preferred_locations"`

	NotificationViewingReminderDays int  `json:"notification_viewing_reminder_days"`
	NotificationEmailEnabled        bool `json:"notification_email_enabled"`
	NotificationInAppEnabled        bool `json:"notification_in_app_enabled"`
	NotificationFeedChangesEnabled  bool `json:"notification_feed_changes_enabled"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ProfileUpdate carries only the fields being changed; nil fields are left
// untouched server-side.
type ProfileUpdate struct {
	Bio                      *string  `json:"bio,omitempty"`
	DreamPropertyDescription *string  `json:"dream_property_description,omitempty"`
	PreferredPriceMin        *float64 `json:"preferred_price_min,omitempty"`
	PreferredPriceMax        *float64 `json:"preferred_price_max,omitempty"`
	PreferredBedroomsMin     *int     `json:"preferred_bedrooms_min,omitempty"`
	PreferredPropertyTypes   []string `json:"preferred_property_types,omitempty"`
	PreferredLocations       []string `json:"preferred_locations,omitempty"`
}

// NotificationSettings is the GET/PUT /users/notifications payload.
type NotificationSettings struct {
	ViewingReminderDays int  `json:"notification_viewing_reminder_days"`
	EmailEnabled        bool `json:"notification_email_enabled"`
	InAppEnabled        bool `json:"notification_in_app_enabled"`
	FeedChangesEnabled  bool `json:"notification_feed_changes_enabled"`
}
