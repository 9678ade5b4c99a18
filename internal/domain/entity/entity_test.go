package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Top 10 Beaches in Goa", "top-10-beaches-in-goa"},
		{"  Hello,   World!  ", "hello-world"},
		{"Already-Slugged", "already-slugged"},
		{"", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestBlogPost_SlugGeneratedOnceOnly(t *testing.T) {
	post := &BlogPost{Title: "Monsoon Trekking Guide"}
	post.EnsureSlug()
	require.Equal(t, "monsoon-trekking-guide", post.Slug)

	// A later title edit must not regenerate the slug
	post.Title = "The Complete Monsoon Trekking Guide"
	post.EnsureSlug()
	assert.Equal(t, "monsoon-trekking-guide", post.Slug)
}

func TestTrip_Validate(t *testing.T) {
	trip := &Trip{Title: "Weekend in Rishikesh", Category: CategoryWeekend, Price: 4999}
	assert.NoError(t, trip.Validate())

	trip.Price = -1
	assert.ErrorIs(t, trip.Validate(), ErrNegativePrice)

	trip.Price = 0
	trip.Category = "mystery-trips"
	assert.Error(t, trip.Validate())

	assert.Error(t, (&Trip{Category: CategoryWeekend}).Validate())
}

func TestValidTripCategory(t *testing.T) {
	assert.Len(t, TripCategories, 9)
	for _, c := range TripCategories {
		assert.True(t, ValidTripCategory(c))
	}
	assert.False(t, ValidTripCategory("cruise-trips"))
}

func TestUser_Validate(t *testing.T) {
	assert.ErrorIs(t, (&User{Email: "a@b.com"}).Validate(), ErrMissingPassword)
	assert.NoError(t, (&User{Email: "a@b.com", PasswordHash: "x"}).Validate())
	// An external identity link stands in for a password
	assert.NoError(t, (&User{Email: "a@b.com", ExternalID: "google-123"}).Validate())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestBooking_Validate(t *testing.T) {
	b := &Booking{UserID: "u1", Travelers: 0}
	assert.ErrorIs(t, b.Validate(), ErrNoTravelers)

	b.Travelers = 2
	assert.NoError(t, b.Validate())

	assert.Error(t, (&Booking{Travelers: 1}).Validate())
}

func TestNewBookingCode(t *testing.T) {
	code := NewBookingCode()
	require.True(t, strings.HasPrefix(code, "TRV-"))
	assert.Len(t, code, 12)
	assert.NotEqual(t, code, NewBookingCode())
}

func TestBooking_CanTransitionTo(t *testing.T) {
	b := &Booking{Status: BookingPending}
	assert.True(t, b.CanTransitionTo(BookingConfirmed))
	assert.True(t, b.CanTransitionTo(BookingCancelled))
	assert.False(t, b.CanTransitionTo(BookingCompleted))

	b.Status = BookingConfirmed
	assert.True(t, b.CanTransitionTo(BookingCompleted))
	assert.True(t, b.CanTransitionTo(BookingCancelled))

	b.Status = BookingCancelled
	assert.False(t, b.CanTransitionTo(BookingPending))
	b.Status = BookingCompleted
	assert.False(t, b.CanTransitionTo(BookingCancelled))
}
