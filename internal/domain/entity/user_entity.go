package entity

import (
	"time"
)

// User is the aggregate root for the clinician identity domain.
// PasswordHash holds a bcrypt hash and must never reach an outward-facing
// response; handlers render application.UserView instead.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
