package model

import "time"

type CodeChangeType string

const (
	CodeChangeCommit      CodeChangeType = "COMMIT"
	CodeChangePullRequest CodeChangeType = "PULL_REQUEST"
)

// CodeChange is a commit or pull request seen in a webhook delivery. The
// (Type, ExternalID) pair is the natural key: repeat sightings update the
// mutable fields in place and keep the original surrogate ID.
type CodeChange struct {
	ID         int64          `json:"id"`
	Type       CodeChangeType `json:"type"`
	ExternalID string         `json:"external_id"`
	Title      string         `json:"title"`
	URL        string         `json:"url"`
	Author     string         `json:"author"`
	OccurredAt time.Time      `json:"occurred_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
