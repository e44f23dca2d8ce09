package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity-provider account. Signing in yields the stable ID and
// Email that gate all application functionality; party identity in the
// ledgers remains name-based.
type User struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

// NewUser creates a user with a generated id and creation timestamp.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
