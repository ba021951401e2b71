package domain

import (
	"errors"
	"time"
)

// Role is the kind of account a principal holds.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProfileNotFound    = errors.New("profile not found")
)

// User models an account registered with the identity provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the public part of a user that other flows are allowed to read.
type Profile struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name,omitempty"`
}

// Profile returns the profile view of u.
func (u *User) Profile() *Profile {
	return &Profile{ID: u.ID, Role: u.Role, FullName: u.FullName}
}
