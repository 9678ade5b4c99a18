package entity

import (
	"time"
)

// Site content block types, one block per logical page region
const (
	ContentHeader  = "header"
	ContentFooter  = "footer"
	ContentAboutUs = "about-us"
)

// SiteContentBlock is a singleton configuration block keyed by Type.
// Content is an opaque structured payload owned by the rendering layer;
// Version increases by one on every upsert.
type SiteContentBlock struct {
	ID        string                 `bson:"_id,omitempty" json:"id,omitempty"`
	Type      string                 `bson:"type" json:"type"`
	Content   map[string]interface{} `bson:"content" json:"content"`
	Version   int64                  `bson:"version" json:"version"`
	IsActive  bool                   `bson:"isActive" json:"isActive"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the SiteContentBlock invariants before a write
func (s *SiteContentBlock) Validate() error {
	if s.Type == "" {
		return ErrMissingField("type")
	}
	return nil
}
