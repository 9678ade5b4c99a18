package entity

import (
	"errors"
	"fmt"
)

// Validation errors shared by the canonical schemas
var (
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNoTravelers     = errors.New("booking requires at least one traveler")
	ErrMissingPassword = errors.New("password required without an external identity link")
	ErrBadStatusChange = errors.New("booking status transition not allowed")
)

// ErrMissingField reports a required field left empty
func ErrMissingField(field string) error {
	return fmt.Errorf("missing required field %q", field)
}

// ErrInvalidEnum reports a value outside a closed vocabulary
func ErrInvalidEnum(field, value string) error {
	return fmt.Errorf("invalid %s value %q", field, value)
}
