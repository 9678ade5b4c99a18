package repository

import (
	"context"
	"fmt"
	"time"

	"travelgate-service/internal/domain/entity"
	"travelgate-service/internal/domain/repository"
	"travelgate-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// MongoCanonicalStore implements the CanonicalStore interface against the
// primary document store
type MongoCanonicalStore struct {
	db  *mongo.Database
	log logger.Logger
}

// NewMongoCanonicalStore creates the store and declares the unique index
// backing each entity's uniqueness rule
func NewMongoCanonicalStore(db *mongo.Database, log logger.Logger) repository.CanonicalStore {
	ctx := context.Background()

	db.Collection("trips").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: 1},
			{Key: "category", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	db.Collection("activities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	})
	db.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"slug": 1},
		Options: options.Index().SetUnique(true),
	})
	// Text index backing the relevance-ranked trip search
	db.Collection("trips").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "destination", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	db.Collection("destinations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	})
	db.Collection("sitecontent").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"type": 1},
		Options: options.Index().SetUnique(true),
	})
	db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	db.Collection("bookings").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"bookingCode": 1},
		Options: options.Index().SetUnique(true),
	})

	return &MongoCanonicalStore{db: db, log: log}
}

// exists runs a dedup-key lookup, treating ErrNoDocuments as a clean miss
func (s *MongoCanonicalStore) exists(ctx context.Context, collection string, filter bson.M) (bool, error) {
	err := s.db.Collection(collection).FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TripExists checks the (title, category) dedup key
func (s *MongoCanonicalStore) TripExists(ctx context.Context, title, category string) (bool, error) {
	return s.exists(ctx, "trips", bson.M{"title": title, "category": category})
}

// InsertTrip validates and inserts a trip
func (s *MongoCanonicalStore) InsertTrip(ctx context.Context, trip *entity.Trip) error {
	if err := trip.Validate(); err != nil {
		return err
	}
	stampNew(&trip.CreatedAt, &trip.UpdatedAt)
	_, err := s.db.Collection("trips").InsertOne(ctx, trip)
	return err
}

// DeactivateTrip soft-deletes a trip; trips are never removed
func (s *MongoCanonicalStore) DeactivateTrip(ctx context.Context, id string) error {
	result, err := s.db.Collection("trips").UpdateOne(
		ctx,
		idFilter(id),
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate trip: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: trips/%s", ErrNotFound, id)
	}
	return nil
}

// ActivityExists checks the name dedup key
func (s *MongoCanonicalStore) ActivityExists(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, "activities", bson.M{"name": name})
}

// InsertActivity validates and inserts an activity
func (s *MongoCanonicalStore) InsertActivity(ctx context.Context, activity *entity.Activity) error {
	if err := activity.Validate(); err != nil {
		return err
	}
	stampNew(&activity.CreatedAt, &activity.UpdatedAt)
	_, err := s.db.Collection("activities").InsertOne(ctx, activity)
	return err
}

// BlogExists checks the slug dedup key
func (s *MongoCanonicalStore) BlogExists(ctx context.Context, slug string) (bool, error) {
	return s.exists(ctx, "blogs", bson.M{"slug": slug})
}

// InsertBlog ensures the slug and inserts a post
func (s *MongoCanonicalStore) InsertBlog(ctx context.Context, post *entity.BlogPost) error {
	post.EnsureSlug()
	if err := post.Validate(); err != nil {
		return err
	}
	stampNew(&post.CreatedAt, &post.UpdatedAt)
	_, err := s.db.Collection("blogs").InsertOne(ctx, post)
	return err
}

// IncrementBlogViews bumps viewCount on a read of the post
func (s *MongoCanonicalStore) IncrementBlogViews(ctx context.Context, slug string) error {
	result, err := s.db.Collection("blogs").UpdateOne(
		ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"viewCount": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: blogs/%s", ErrNotFound, slug)
	}
	return nil
}

// DestinationExists checks the name dedup key
func (s *MongoCanonicalStore) DestinationExists(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, "destinations", bson.M{"name": name})
}

// InsertDestination validates and inserts a curated destination
func (s *MongoCanonicalStore) InsertDestination(ctx context.Context, dest *entity.CuratedDestination) error {
	if err := dest.Validate(); err != nil {
		return err
	}
	stampNew(&dest.CreatedAt, &dest.UpdatedAt)
	_, err := s.db.Collection("destinations").InsertOne(ctx, dest)
	return err
}

// UpsertSiteContent writes the singleton block for its type. Version goes
// up by one on every write and isActive is forced true; the blocks are
// configuration, not catalog items, so there is no existence-skip.
func (s *MongoCanonicalStore) UpsertSiteContent(ctx context.Context, block *entity.SiteContentBlock) error {
	if err := block.Validate(); err != nil {
		return err
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"content":   block.Content,
			"isActive":  true,
			"updatedAt": now,
		},
		"$inc":         bson.M{"version": 1},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := s.db.Collection("sitecontent").UpdateOne(
		ctx,
		bson.M{"type": block.Type},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// UserExists checks the case-insensitive email dedup key
func (s *MongoCanonicalStore) UserExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "users", bson.M{"email": entity.NormalizeEmail(email)})
}

// InsertUsers bulk-inserts accounts whose credentials are already hashed.
// This path deliberately bypasses hashing; the input invariant is on the
// source data, not checked here.
func (s *MongoCanonicalStore) InsertUsers(ctx context.Context, users []*entity.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		u.Email = entity.NormalizeEmail(u.Email)
		stampNew(&u.CreatedAt, &u.UpdatedAt)
		docs = append(docs, u)
	}

	result, err := s.db.Collection("users").InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if result != nil {
		return len(result.InsertedIDs), err
	}
	return 0, err
}

// CreateUser is the signup path: it hashes the plaintext password unless
// the account is linked to an external identity provider
func (s *MongoCanonicalStore) CreateUser(ctx context.Context, user *entity.User, plainPassword string) error {
	user.Email = entity.NormalizeEmail(user.Email)

	if plainPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := user.Validate(); err != nil {
		return err
	}
	user.IsActive = true
	stampNew(&user.CreatedAt, &user.UpdatedAt)

	_, err := s.db.Collection("users").InsertOne(ctx, user)
	return err
}

// CreateBooking generates the booking code and inserts the checkout record
func (s *MongoCanonicalStore) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	if err := booking.Validate(); err != nil {
		return err
	}
	if booking.BookingCode == "" {
		booking.BookingCode = entity.NewBookingCode()
	}
	if booking.Status == "" {
		booking.Status = entity.BookingPending
	}
	stampNew(&booking.CreatedAt, &booking.UpdatedAt)

	_, err := s.db.Collection("bookings").InsertOne(ctx, booking)
	return err
}

// UpdateBookingStatus applies a status transition, rejecting moves the
// lifecycle does not allow
func (s *MongoCanonicalStore) UpdateBookingStatus(ctx context.Context, bookingCode, status string) error {
	var booking entity.Booking
	err := s.db.Collection("bookings").FindOne(ctx, bson.M{"bookingCode": bookingCode}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("%w: bookings/%s", ErrNotFound, bookingCode)
	}
	if err != nil {
		return err
	}

	if !booking.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", entity.ErrBadStatusChange, booking.Status, status)
	}

	_, err = s.db.Collection("bookings").UpdateOne(
		ctx,
		bson.M{"bookingCode": bookingCode, "status": booking.Status},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

func stampNew(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
