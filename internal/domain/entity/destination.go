package entity

import (
	"time"
)

// PriceRange carries the advertised starting price for a destination
type PriceRange struct {
	StartingFrom float64 `bson:"startingFrom" json:"startingFrom"`
	Currency     string  `bson:"currency" json:"currency"`
}

// DurationRange is the advertised trip length in days. Min <= Max is
// expected but not enforced; legacy exports violate it.
type DurationRange struct {
	Min int `bson:"min" json:"min"`
	Max int `bson:"max" json:"max"`
}

// CuratedDestination is an editorially picked destination. Name is the
// dedup key during ingestion.
type CuratedDestination struct {
	ID          string        `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string        `bson:"name" json:"name"`
	Country     string        `bson:"country" json:"country"`
	Description string        `bson:"description" json:"description"`
	Highlights  []string      `bson:"highlights" json:"highlights"`
	Price       PriceRange    `bson:"price" json:"price"`
	Duration    DurationRange `bson:"duration" json:"duration"`
	ImageURL    string        `bson:"imageUrl" json:"imageUrl"`
	BestSeason  string        `bson:"bestSeason" json:"bestSeason"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
	IsFeatured  bool          `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the CuratedDestination invariants before a write
func (d *CuratedDestination) Validate() error {
	if d.Name == "" {
		return ErrMissingField("name")
	}
	if d.Price.StartingFrom < 0 {
		return ErrNegativePrice
	}
	return nil
}
