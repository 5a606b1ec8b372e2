package models

// Viewing is a scheduled property viewing.
type Viewing struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	PropertyID   int    `json:"property_id"`
	ViewingDate  string `json:"viewing_date"` // YYYY-MM-DD
	ViewingTime  string `json:"viewing_time"` // HH:MM, optional
	AgentContact string `json:"agent_contact"`
	Notes        string `json:"notes"`
	ReminderSent bool   `json:"reminder_sent"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ViewingRequest is the create/update payload for a viewing.
type ViewingRequest struct {
	PropertyID   int    `json:"property_id"`
	ViewingDate  string `json:"viewing_date"`
	ViewingTime  string `json:"viewing_time,omitempty"`
	AgentContact string `json:"agent_contact,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
