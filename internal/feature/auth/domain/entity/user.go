// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered journal owner.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Email is the user's login identifier.
	// It is stored trimmed and lowercased, and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
