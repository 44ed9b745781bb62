package users

import "time"

// User is a registered account. PasswordHash never serializes: handler
// responses carry the public projection only.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserParams contains parameters for creating a new user.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
}
