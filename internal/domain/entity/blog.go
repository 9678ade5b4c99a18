package entity

import (
	"strings"
	"time"
	"unicode"
)

// BlogPost is a published article. The slug is derived from the title once
// at creation and never regenerated, so edits to the title do not break
// existing links.
type BlogPost struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string    `bson:"title" json:"title"`
	Slug        string    `bson:"slug" json:"slug"`
	Author      string    `bson:"author" json:"author"`
	Summary     string    `bson:"summary" json:"summary"`
	Content     string    `bson:"content" json:"content"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	Tags        []string  `bson:"tags" json:"tags"`
	ViewCount   int64     `bson:"viewCount" json:"viewCount"`
	IsPublished bool      `bson:"isPublished" json:"isPublished"`
	PublishedAt time.Time `bson:"publishedAt" json:"publishedAt"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EnsureSlug fills Slug from Title if it is still empty
func (b *BlogPost) EnsureSlug() {
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
}

// Validate checks the BlogPost invariants before a write
func (b *BlogPost) Validate() error {
	if b.Title == "" {
		return ErrMissingField("title")
	}
	if b.Slug == "" {
		return ErrMissingField("slug")
	}
	return nil
}

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen
func Slugify(s string) string {
	var sb strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			sb.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
