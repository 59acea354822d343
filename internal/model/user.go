package model

import "time"

type Role string

const (
	RoleDev    Role = "DEV"
	RoleQA     Role = "QA"
	RolePM     Role = "PM"
	RoleClient Role = "CLIENT"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleDev, RoleQA, RolePM, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the authenticated caller of a state-machine operation, carried
// from the auth middleware into the service layer.
type Actor struct {
	UserID int64
	Role   Role
}
