package model

import "time"

// Comment on an issue. System comments are written by the reconciliation
// engine, carry no author, and are immutable.
type Comment struct {
	ID         int64     `json:"id"`
	IssueID    int64     `json:"issue_id"`
	AuthorID   *int64    `json:"author_id,omitempty"`
	AuthorName *string   `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	IsSystem   bool      `json:"is_system"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
