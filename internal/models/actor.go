package models

import "github.com/google/uuid"

// Actor is the authenticated principal performing an operation,
// as resolved by the auth middleware.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a Actor) IsHoster() bool { return a.Role == RoleHoster }
