package auth

import "time"

// Account is the credential view of a user, loaded for login checks.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
