package model

import "time"

type Review struct {
	UID          string
	MovieUID     string
	ReviewerName string
	Rating       int
	Text         string
	CreatedAt    time.Time

	Upvotes   int
	Downvotes int

	// Set on reviews authored in this browser session's overlay. Local reviews
	// never round-trip through the CMS list endpoints.
	IsLocal bool
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "upvote"
	VoteDown VoteDirection = "downvote"
	VoteNone VoteDirection = ""
)

type VoteCounters struct {
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	UpdatedAt time.Time `json:"updated_at"`
}
