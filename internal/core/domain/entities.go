package domain

import (
	"time"
)

// Role controls access to admin-only operations.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// User is a registered member or administrator.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Gym is a registered gym. Immutable once created.
type Gym struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Location    GeoPoint  `json:"location"`
	Distance    *float64  `json:"distance,omitempty"` // computed field, meters
	CreatedAt   time.Time `json:"created_at"`
}

// CheckIn records a user's visit to a gym. ValidatedAt stays nil until an
// admin confirms the visit; once set it is never cleared.
type CheckIn struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GymID       string     `json:"gym_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

// Validated reports whether the check-in has been confirmed by an admin.
func (c *CheckIn) Validated() bool {
	return c.ValidatedAt != nil
}
