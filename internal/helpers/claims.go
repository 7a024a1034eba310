package helpers

import (
	"github.com/bikebay/server/internal/models"
	"github.com/google/uuid"
)

// EnhancedClaims combines the token claims with the user record the auth
// middleware fetched, so handlers see current data rather than what was
// true when the token was signed.
type EnhancedClaims struct {
	*CustomClaims
	Role   string
	UserID uuid.UUID
	Email  string
	Name   string
}

// Actor reduces the claims to the principal the service layer authorizes on.
func (ec *EnhancedClaims) Actor() models.Actor {
	return models.Actor{ID: ec.UserID, Role: ec.Role}
}
