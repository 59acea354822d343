package model

import "time"

// Session maps an opaque bearer token to a user. Token issuance lives outside
// this service; the table is read-only here.
type Session struct {
	Token     string     `json:"-"`
	UserID    int64      `json:"user_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
