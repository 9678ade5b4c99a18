package entity

import (
	"time"
)

// Activity difficulty levels
const (
	DifficultyEasy      = "easy"
	DifficultyModerate  = "moderate"
	DifficultyChallenge = "challenging"
	DifficultyExtreme   = "extreme"
)

// Activity categories
const (
	ActivityAdventure = "adventure"
	ActivityWater     = "water"
	ActivityCultural  = "cultural"
	ActivityNature    = "nature"
	ActivityWellness  = "wellness"
)

// Activity represents a bookable experience. Name is the dedup key;
// category and difficulty are normalized to the closed vocabularies above
// before any write.
type Activity struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category" json:"category"`
	Difficulty  string    `bson:"difficulty" json:"difficulty"`
	Location    string    `bson:"location" json:"location"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Duration    string    `bson:"duration" json:"duration"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	IsFeatured  bool      `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the Activity invariants before a write
func (a *Activity) Validate() error {
	if a.Name == "" {
		return ErrMissingField("name")
	}
	if a.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
