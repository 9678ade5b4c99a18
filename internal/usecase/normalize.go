package usecase

import (
	"strings"

	"travelgate-service/internal/domain/entity"
)

// difficultyTable maps the difficulty spellings seen across the legacy
// exports onto the closed vocabulary. Unrecognized values get the default
// unconditionally.
var difficultyTable = map[string]string{
	"easy":         entity.DifficultyEasy,
	"beginner":     entity.DifficultyEasy,
	"simple":       entity.DifficultyEasy,
	"moderate":     entity.DifficultyModerate,
	"medium":       entity.DifficultyModerate,
	"intermediate": entity.DifficultyModerate,
	"hard":         entity.DifficultyChallenge,
	"difficult":    entity.DifficultyChallenge,
	"challenging":  entity.DifficultyChallenge,
	"advanced":     entity.DifficultyChallenge,
	"extreme":      entity.DifficultyExtreme,
	"expert":       entity.DifficultyExtreme,
}

const defaultDifficulty = entity.DifficultyModerate

// activityCategoryTable normalizes legacy activity category spellings
var activityCategoryTable = map[string]string{
	"adventure":    entity.ActivityAdventure,
	"adventurous":  entity.ActivityAdventure,
	"trekking":     entity.ActivityAdventure,
	"water":        entity.ActivityWater,
	"watersports":  entity.ActivityWater,
	"water-sports": entity.ActivityWater,
	"cultural":     entity.ActivityCultural,
	"culture":      entity.ActivityCultural,
	"heritage":     entity.ActivityCultural,
	"nature":       entity.ActivityNature,
	"wildlife":     entity.ActivityNature,
	"wellness":     entity.ActivityWellness,
	"spa":          entity.ActivityWellness,
	"yoga":         entity.ActivityWellness,
}

const defaultActivityCategory = entity.ActivityAdventure

// NormalizeDifficulty maps a source difficulty onto the closed vocabulary
func NormalizeDifficulty(raw string) string {
	if v, ok := difficultyTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return defaultDifficulty
}

// NormalizeActivityCategory maps a source category onto the closed
// vocabulary
func NormalizeActivityCategory(raw string) string {
	if v, ok := activityCategoryTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return defaultActivityCategory
}

// firstString walks a fallback chain of source field names and returns the
// first non-empty string value
func firstString(src map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := src[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// firstNumber walks a fallback chain and returns the first numeric value
func firstNumber(src map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch v := src[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}

// firstBool walks a fallback chain and returns the first boolean value,
// else the given default
func firstBool(src map[string]interface{}, def bool, keys ...string) bool {
	for _, key := range keys {
		if v, ok := src[key].(bool); ok {
			return v
		}
	}
	return def
}

// stringSlice coerces a source value into a []string, dropping non-string
// elements
func stringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// mapTrip normalizes one legacy trip record. The category comes from the
// source file, not the record: each per-category export holds one kind.
func mapTrip(src map[string]interface{}, category string) *entity.Trip {
	price := firstNumber(src, "price", "cost", "startingPrice")
	if price < 0 {
		price = 0
	}
	return &entity.Trip{
		Title:       firstString(src, "title", "name"),
		Category:    category,
		Destination: firstString(src, "destination", "location", "place"),
		Description: firstString(src, "description", "details", "about"),
		Price:       price,
		Duration:    firstString(src, "duration", "days"),
		ImageURL:    firstString(src, "imageUrl", "image", "img"),
		Rating:      firstNumber(src, "rating", "stars"),
		Tags:        stringSlice(src["tags"]),
		IsActive:    true,
		IsFeatured:  firstBool(src, false, "isFeatured", "featured"),
	}
}

// mapActivity normalizes one legacy activity record
func mapActivity(src map[string]interface{}) *entity.Activity {
	price := firstNumber(src, "price", "cost")
	if price < 0 {
		price = 0
	}
	return &entity.Activity{
		Name:        firstString(src, "name", "title"),
		Category:    NormalizeActivityCategory(firstString(src, "category", "type")),
		Difficulty:  NormalizeDifficulty(firstString(src, "difficulty", "level")),
		Location:    firstString(src, "location", "destination", "place"),
		Description: firstString(src, "description", "details"),
		Price:       price,
		Duration:    firstString(src, "duration"),
		ImageURL:    firstString(src, "imageUrl", "image", "img"),
		IsActive:    true,
		IsFeatured:  firstBool(src, false, "isFeatured", "featured"),
	}
}

// mapBlog normalizes one legacy blog record. The slug is derived from the
// title here, once; later title edits never regenerate it.
func mapBlog(src map[string]interface{}) *entity.BlogPost {
	post := &entity.BlogPost{
		Title:       firstString(src, "title", "heading"),
		Slug:        firstString(src, "slug"),
		Author:      firstString(src, "author", "writer"),
		Summary:     firstString(src, "summary", "excerpt", "intro"),
		Content:     firstString(src, "content", "body", "text"),
		ImageURL:    firstString(src, "imageUrl", "image", "img"),
		Tags:        stringSlice(src["tags"]),
		IsPublished: firstBool(src, true, "isPublished", "published"),
	}
	post.EnsureSlug()
	return post
}

// mapDestination normalizes one legacy curated-destination record
func mapDestination(src map[string]interface{}) *entity.CuratedDestination {
	starting := firstNumber(src, "startingFrom", "price", "startingPrice")
	if starting < 0 {
		starting = 0
	}
	return &entity.CuratedDestination{
		Name:        firstString(src, "name", "title"),
		Country:     firstString(src, "country"),
		Description: firstString(src, "description", "details"),
		Highlights:  stringSlice(src["highlights"]),
		Price: entity.PriceRange{
			StartingFrom: starting,
			Currency:     firstString(src, "currency"),
		},
		Duration: entity.DurationRange{
			Min: int(firstNumber(src, "minDays", "durationMin")),
			Max: int(firstNumber(src, "maxDays", "durationMax")),
		},
		ImageURL:   firstString(src, "imageUrl", "image", "img"),
		BestSeason: firstString(src, "bestSeason", "season"),
		IsActive:   true,
		IsFeatured: firstBool(src, false, "isFeatured", "featured"),
	}
}

// mapUser normalizes one legacy account record. The password field is
// taken as an already-hashed credential; nothing here re-hashes it.
func mapUser(src map[string]interface{}) *entity.User {
	role := strings.ToLower(firstString(src, "role"))
	if role != entity.RoleAdmin {
		role = entity.RoleCustomer
	}
	return &entity.User{
		Name:         firstString(src, "name", "fullName", "username"),
		Email:        entity.NormalizeEmail(firstString(src, "email")),
		PasswordHash: firstString(src, "passwordHash", "password"),
		Phone:        firstString(src, "phone", "mobile"),
		Role:         role,
		ExternalID:   firstString(src, "externalId", "googleId"),
		IsActive:     firstBool(src, true, "isActive"),
	}
}
