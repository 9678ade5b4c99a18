package usecase

import (
	"testing"

	"travelgate-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"easy", entity.DifficultyEasy},
		{"Beginner", entity.DifficultyEasy},
		{"MEDIUM", entity.DifficultyModerate},
		{" hard ", entity.DifficultyChallenge},
		{"expert", entity.DifficultyExtreme},
		{"ludicrous", entity.DifficultyModerate},
		{"", entity.DifficultyModerate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDifficulty(tt.in), "NormalizeDifficulty(%q)", tt.in)
	}
}

func TestNormalizeActivityCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Water-Sports", entity.ActivityWater},
		{"heritage", entity.ActivityCultural},
		{"YOGA", entity.ActivityWellness},
		{"wildlife", entity.ActivityNature},
		{"unknown-thing", entity.ActivityAdventure},
		{"", entity.ActivityAdventure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeActivityCategory(tt.in), "NormalizeActivityCategory(%q)", tt.in)
	}
}

func TestMapTrip_FallbackChains(t *testing.T) {
	trip := mapTrip(map[string]interface{}{
		"name":     "Hidden Valley",
		"location": "Spiti",
		"cost":     7500.0,
		"days":     "5D/4N",
		"featured": true,
		"tags":     []interface{}{"mountains", 42.0, "roadtrip"},
	}, entity.CategoryDomestic)

	assert.Equal(t, "Hidden Valley", trip.Title)
	assert.Equal(t, "Spiti", trip.Destination)
	assert.Equal(t, 7500.0, trip.Price)
	assert.Equal(t, "5D/4N", trip.Duration)
	assert.Equal(t, entity.CategoryDomestic, trip.Category)
	assert.True(t, trip.IsFeatured)
	assert.Equal(t, []string{"mountains", "roadtrip"}, trip.Tags, "non-string tags dropped")
}

func TestMapTrip_NegativePriceClamped(t *testing.T) {
	trip := mapTrip(map[string]interface{}{"title": "Freebie", "price": -100.0}, entity.CategoryWeekend)
	assert.Equal(t, 0.0, trip.Price)
}

func TestMapTrip_PrimaryFieldWinsOverFallback(t *testing.T) {
	trip := mapTrip(map[string]interface{}{
		"destination": "Goa",
		"location":    "Old Goa",
		"title":       "Beach Trip",
	}, entity.CategoryHotLocations)
	assert.Equal(t, "Goa", trip.Destination)
}

func TestMapBlog_SlugFromTitleOnlyWhenMissing(t *testing.T) {
	post := mapBlog(map[string]interface{}{"title": "Ten Days in Ladakh"})
	assert.Equal(t, "ten-days-in-ladakh", post.Slug)

	// A source slug survives untouched
	post = mapBlog(map[string]interface{}{"title": "Ten Days in Ladakh", "slug": "ladakh-legacy-slug"})
	assert.Equal(t, "ladakh-legacy-slug", post.Slug)
}

func TestMapUser_PasswordHashChain(t *testing.T) {
	u := mapUser(map[string]interface{}{
		"email":    "A@B.com",
		"password": "$2a$10$hash-from-export",
		"role":     "ADMIN",
	})
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "$2a$10$hash-from-export", u.PasswordHash)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	u = mapUser(map[string]interface{}{"email": "c@d.com", "role": "superuser"})
	assert.Equal(t, entity.RoleCustomer, u.Role, "unknown roles collapse to customer")
}

func TestMapDestination(t *testing.T) {
	dest := mapDestination(map[string]interface{}{
		"title":         "Kerala Backwaters",
		"startingPrice": 9999.0,
		"minDays":       3.0,
		"maxDays":       7.0,
		"season":        "Winter",
	})
	assert.Equal(t, "Kerala Backwaters", dest.Name)
	assert.Equal(t, 9999.0, dest.Price.StartingFrom)
	assert.Equal(t, 3, dest.Duration.Min)
	assert.Equal(t, 7, dest.Duration.Max)
	assert.Equal(t, "Winter", dest.BestSeason)
}
