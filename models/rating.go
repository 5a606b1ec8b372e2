package models

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

type Rating struct {
	ID         int      `json:"id"`
	PropertyID int      `json:"property_id"`
	VoteType   VoteType `json:"vote_type"`
	VotedAt    string   `json:"voted_at"`
}

// MyRating is the caller's own vote on a property. VoteType is "" when no
// vote has been recorded (the wire sends null).
type MyRating struct {
	VoteType VoteType `json:"vote_type"`
	VotedAt  string   `json:"voted_at"`
}
