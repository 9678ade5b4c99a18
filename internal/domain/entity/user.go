package entity

import (
	"strings"
	"time"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account holder. Email is unique case-insensitively and stored
// lowercase. Users are never deleted, only deactivated.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         string    `bson:"role" json:"role"`
	// ExternalID links a federated identity; when set, PasswordHash may be
	// empty.
	ExternalID string    `bson:"externalId,omitempty" json:"externalId,omitempty"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeEmail lowercases and trims the address used for uniqueness
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the User invariants before a write
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrMissingField("email")
	}
	if u.PasswordHash == "" && u.ExternalID == "" {
		return ErrMissingPassword
	}
	return nil
}
