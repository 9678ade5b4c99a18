package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking statuses
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// Booking is a checkout record. BookingCode is generated once and unique;
// a booking belongs to exactly one user. TripID may be empty when the
// customer booked against a free-text trip title.
type Booking struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	BookingCode string    `bson:"bookingCode" json:"bookingCode"`
	UserID      string    `bson:"userId" json:"userId"`
	TripID      string    `bson:"tripId,omitempty" json:"tripId,omitempty"`
	TripTitle   string    `bson:"tripTitle" json:"tripTitle"`
	Travelers   int       `bson:"travelers" json:"travelers"`
	TravelDate  time.Time `bson:"travelDate" json:"travelDate"`
	TotalPrice  float64   `bson:"totalPrice" json:"totalPrice"`
	Status      string    `bson:"status" json:"status"`
	Notes       string    `bson:"notes" json:"notes"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewBookingCode generates a code like TRV-1A2B3C4D
func NewBookingCode() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("TRV-%s", short)
}

// Validate checks the Booking invariants before a write
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return ErrMissingField("userId")
	}
	if b.Travelers < 1 {
		return ErrNoTravelers
	}
	return nil
}

// CanTransitionTo reports whether the status change is allowed. Bookings
// only ever move forward or get cancelled before completion.
func (b *Booking) CanTransitionTo(next string) bool {
	switch b.Status {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	default:
		return false
	}
}
