package models

// Comment is a private note a user attached to a property.
type Comment struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	PropertyID int    `json:"property_id"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
