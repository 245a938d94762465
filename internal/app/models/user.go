package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           string     `json:"id" db:"id" example:"5f1c7a9e-3c1e-4a57-9d55-2f8f1c2b6a10"`
	Email        string     `json:"email" db:"email" example:"student@example.edu"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name" example:"Jane Doe"`
	Role         Role       `json:"role" db:"role" example:"student"`
	Status       UserStatus `json:"status" db:"status" example:"active"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the account may use the API
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
