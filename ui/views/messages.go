package views

import "rentscout/models"

// OpenDetailMsg asks the root model to open the detail overlay for a
// property.
type OpenDetailMsg struct {
	PropertyID int
}

// CloseDetailMsg asks the root model to drop the detail overlay.
type CloseDetailMsg struct{}

// LoggedInMsg reports a completed login or register.
type LoggedInMsg struct {
	User models.User
}

// LoggedOutMsg reports that the session ended, by choice or by a revoked
// token.
type LoggedOutMsg struct{}
