package domain

import "time"

type User struct {
	Id        UserId    `json:"id"`
	Email     Email     `json:"email"`
	Username  Username  `json:"username"`
	PassHash  string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credentials is the registration payload after transport-level validation.
type Credentials struct {
	Email    Email
	Username Username
	Password Password
}
