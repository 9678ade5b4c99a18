package repository

import (
	"errors"

	"travelgate-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
)

// Sentinel errors for gateway callers
var (
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrNotFound           = errors.New("record not found")
	ErrReadOnlyFallback   = errors.New("flat-file fallback is read-only, write not persisted")
	ErrPrimaryUnavailable = errors.New("primary store unavailable")
)

// Entity kinds used as search-result discriminators and mongo collection
// names
const (
	KindTrip        = "trip"
	KindActivity    = "activity"
	KindBlog        = "blog"
	KindDestination = "destination"
	KindSiteContent = "siteContent"
	KindUser        = "user"
	KindBooking     = "booking"
)

// CollectionSpec binds one caller-facing collection name to both backends:
// the mongo collection plus its default visibility filter on one side, the
// flat file and its payload array key on the other. TripCategory carries
// the hardcoded sub-category for the per-category trip collections. An
// empty ArrayKey means the file is either a bare object payload or needs
// the first-array heuristic.
type CollectionSpec struct {
	Kind          string
	Mongo         string
	DefaultFilter bson.M
	TripCategory  string
	ContentType   string
	FileName      string
	ArrayKey      string
}

// registry is the full caller-facing collection vocabulary. Adding a
// collection means adding a row here, nothing else.
var registry = map[string]CollectionSpec{
	"users": {
		Kind: KindUser, Mongo: "users",
		DefaultFilter: bson.M{"isActive": true},
		FileName:      "users.json", ArrayKey: "users",
	},
	"trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		FileName:      "trips.json", ArrayKey: "trips",
	},
	"hot-locations": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryHotLocations,
		FileName:      "hotLocations.json", ArrayKey: "hotLocations",
	},
	"upcoming-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryUpcoming,
		FileName:      "upcomingTrips.json", ArrayKey: "upcomingTrips",
	},
	"weekend-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryWeekend,
		FileName:      "weekendTrips.json", ArrayKey: "weekendTrips",
	},
	"domestic-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryDomestic,
		FileName:      "domesticTrips.json", ArrayKey: "domesticTrips",
	},
	"international-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryInternational,
		FileName:      "internationalTrips.json", ArrayKey: "internationalTrips",
	},
	"family-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryFamily,
		FileName:      "familyTrips.json", ArrayKey: "familyTrips",
	},
	"romantic-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryRomantic,
		FileName:      "romanticTrips.json", ArrayKey: "romanticTrips",
	},
	"corporate-trips": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategoryCorporate,
		FileName:      "corporateTrips.json", ArrayKey: "corporateTrips",
	},
	"spiritual-tours": {
		Kind: KindTrip, Mongo: "trips",
		DefaultFilter: bson.M{"isActive": true},
		TripCategory:  entity.CategorySpiritual,
		FileName:      "spiritualTours.json", ArrayKey: "spiritualTours",
	},
	"activities": {
		Kind: KindActivity, Mongo: "activities",
		DefaultFilter: bson.M{"isActive": true},
		FileName:      "activities.json", ArrayKey: "activities",
	},
	"blogs": {
		Kind: KindBlog, Mongo: "blogs",
		DefaultFilter: bson.M{"isPublished": true},
		FileName:      "blogs.json", ArrayKey: "blogs",
	},
	"top-destinations": {
		Kind: KindDestination, Mongo: "destinations",
		DefaultFilter: bson.M{"isActive": true},
		FileName:      "topDestinations.json", ArrayKey: "topDestinations",
	},
	"header": {
		Kind: KindSiteContent, Mongo: "sitecontent",
		ContentType: entity.ContentHeader,
		FileName:    "header.json",
	},
	"footer": {
		Kind: KindSiteContent, Mongo: "sitecontent",
		ContentType: entity.ContentFooter,
		FileName:    "footer.json",
	},
	"about-us": {
		Kind: KindSiteContent, Mongo: "sitecontent",
		ContentType: entity.ContentAboutUs,
		FileName:    "aboutUs.json",
	},
	"bookings": {
		Kind: KindBooking, Mongo: "bookings",
		FileName: "bookings.json", ArrayKey: "bookings",
	},
}

// LookupCollection resolves a caller-facing collection name
func LookupCollection(name string) (CollectionSpec, bool) {
	spec, ok := registry[name]
	return spec, ok
}

// CollectionNames returns the caller-facing vocabulary
func CollectionNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
