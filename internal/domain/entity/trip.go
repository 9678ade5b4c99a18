package entity

import (
	"time"
)

// Trip categories
const (
	CategoryHotLocations  = "hot-locations"
	CategoryUpcoming      = "upcoming-trips"
	CategoryWeekend       = "weekend-trips"
	CategoryDomestic      = "domestic-trips"
	CategoryInternational = "international-trips"
	CategoryFamily        = "family-trips"
	CategoryRomantic      = "romantic-trips"
	CategoryCorporate     = "corporate-trips"
	CategorySpiritual     = "spiritual-tours"
)

// TripCategories is the closed set of trip kinds
var TripCategories = []string{
	CategoryHotLocations,
	CategoryUpcoming,
	CategoryWeekend,
	CategoryDomestic,
	CategoryInternational,
	CategoryFamily,
	CategoryRomantic,
	CategoryCorporate,
	CategorySpiritual,
}

// Trip represents a bookable travel package. The (title, category) pair is
// the dedup key during ingestion; trips are never hard-deleted, only
// deactivated.
type Trip struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	Destination string    `bson:"destination" json:"destination"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Duration    string    `bson:"duration" json:"duration"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	Rating      float64   `bson:"rating" json:"rating"`
	Tags        []string  `bson:"tags" json:"tags"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	IsFeatured  bool      `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidTripCategory reports whether c is one of the nine trip kinds
func ValidTripCategory(c string) bool {
	for _, known := range TripCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Validate checks the Trip invariants before a write
func (t *Trip) Validate() error {
	if t.Title == "" {
		return ErrMissingField("title")
	}
	if !ValidTripCategory(t.Category) {
		return ErrInvalidEnum("category", t.Category)
	}
	if t.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
