package repository

import (
	"context"

	"travelgate-service/internal/domain/entity"
)

// CanonicalStore defines the write surface the ingestion pipeline and the
// account/booking paths use against the primary store. Existence checks
// query by each entity's dedup key.
type CanonicalStore interface {
	TripExists(ctx context.Context, title, category string) (bool, error)
	InsertTrip(ctx context.Context, trip *entity.Trip) error
	DeactivateTrip(ctx context.Context, id string) error

	ActivityExists(ctx context.Context, name string) (bool, error)
	InsertActivity(ctx context.Context, activity *entity.Activity) error

	BlogExists(ctx context.Context, slug string) (bool, error)
	InsertBlog(ctx context.Context, post *entity.BlogPost) error
	IncrementBlogViews(ctx context.Context, slug string) error

	DestinationExists(ctx context.Context, name string) (bool, error)
	InsertDestination(ctx context.Context, dest *entity.CuratedDestination) error

	// UpsertSiteContent writes the singleton block for its type, bumping
	// version by one and forcing isActive true.
	UpsertSiteContent(ctx context.Context, block *entity.SiteContentBlock) error

	UserExists(ctx context.Context, email string) (bool, error)
	// InsertUsers bulk-inserts pre-hashed accounts; it never touches the
	// password values it is given.
	InsertUsers(ctx context.Context, users []*entity.User) (int, error)
	CreateUser(ctx context.Context, user *entity.User, plainPassword string) error

	CreateBooking(ctx context.Context, booking *entity.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingCode, status string) error
}
