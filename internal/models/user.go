// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. AuthToken holds the single active
// session token; a nil value means the user is logged out.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName     string    `gorm:"not null" json:"firstName"`
	LastName      string    `gorm:"not null" json:"lastName"`
	Password      string    `gorm:"not null" json:"-"`
	AuthToken     *string   `gorm:"index" json:"-"`
	ImageFilename *string   `json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// UserProfile is the public view of a user. Email is only populated when the
// requester is viewing their own profile.
type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}
