package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"travelgate-service/internal/domain/entity"
	"travelgate-service/internal/domain/repository"
	repo "travelgate-service/internal/interface/repository"
	"travelgate-service/pkg/logger"
	"travelgate-service/pkg/metrics"
)

// sourceFile describes one legacy export and how its records are ingested
type sourceFile struct {
	name         string
	arrayKey     string
	kind         string
	tripCategory string
	contentType  string
}

// Ingestion kinds
const (
	ingestTrips        = "trips"
	ingestActivities   = "activities"
	ingestBlogs        = "blogs"
	ingestDestinations = "destinations"
	ingestSiteContent  = "siteContent"
	ingestUsers        = "users"
)

// sourceFiles is the fixed legacy-export manifest, processed strictly in
// this order. Per-category trip exports carry their category here because
// the records themselves do not.
var sourceFiles = []sourceFile{
	{name: "hotLocations.json", arrayKey: "hotLocations", kind: ingestTrips, tripCategory: entity.CategoryHotLocations},
	{name: "upcomingTrips.json", arrayKey: "upcomingTrips", kind: ingestTrips, tripCategory: entity.CategoryUpcoming},
	{name: "weekendTrips.json", arrayKey: "weekendTrips", kind: ingestTrips, tripCategory: entity.CategoryWeekend},
	{name: "domesticTrips.json", arrayKey: "domesticTrips", kind: ingestTrips, tripCategory: entity.CategoryDomestic},
	{name: "internationalTrips.json", arrayKey: "internationalTrips", kind: ingestTrips, tripCategory: entity.CategoryInternational},
	{name: "familyTrips.json", arrayKey: "familyTrips", kind: ingestTrips, tripCategory: entity.CategoryFamily},
	{name: "romanticTrips.json", arrayKey: "romanticTrips", kind: ingestTrips, tripCategory: entity.CategoryRomantic},
	{name: "corporateTrips.json", arrayKey: "corporateTrips", kind: ingestTrips, tripCategory: entity.CategoryCorporate},
	{name: "spiritualTours.json", arrayKey: "spiritualTours", kind: ingestTrips, tripCategory: entity.CategorySpiritual},
	{name: "activities.json", arrayKey: "activities", kind: ingestActivities},
	{name: "blogs.json", arrayKey: "blogs", kind: ingestBlogs},
	{name: "topDestinations.json", arrayKey: "topDestinations", kind: ingestDestinations},
	{name: "header.json", kind: ingestSiteContent, contentType: entity.ContentHeader},
	{name: "footer.json", kind: ingestSiteContent, contentType: entity.ContentFooter},
	{name: "aboutUs.json", kind: ingestSiteContent, contentType: entity.ContentAboutUs},
	{name: "users.json", arrayKey: "users", kind: ingestUsers},
}

// FileCounters tallies one source file's run
type FileCounters struct {
	File     string
	Inserted int
	Skipped  int
	Errors   int
}

// Summary is the whole-batch tally
type Summary struct {
	Files       []FileCounters
	Inserted    int
	Skipped     int
	Errors      int
	FilesFailed int
}

// IngestionPipeline is the one-shot batch that normalizes the legacy
// exports into the canonical store. Reruns are idempotent but not
// self-healing: records already present by their dedup key are skipped,
// never updated.
type IngestionPipeline struct {
	store   repository.CanonicalStore
	srcDir  string
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewIngestionPipeline creates a pipeline reading legacy exports from
// srcDir
func NewIngestionPipeline(store repository.CanonicalStore, srcDir string, m *metrics.Metrics, log logger.Logger) *IngestionPipeline {
	return &IngestionPipeline{
		store:   store,
		srcDir:  srcDir,
		metrics: m,
		log:     log,
	}
}

// Run processes every source file sequentially. File-level failures are
// logged and skipped; record-level failures are tallied and do not abort
// the batch.
func (p *IngestionPipeline) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	for _, src := range sourceFiles {
		counters, err := p.runFile(ctx, src)
		if err != nil {
			p.log.Error("Skipping unreadable source file", "file", src.name, "error", err)
			summary.FilesFailed++
			continue
		}
		summary.Files = append(summary.Files, counters)
		summary.Inserted += counters.Inserted
		summary.Skipped += counters.Skipped
		summary.Errors += counters.Errors
		p.log.Info("Source file done", "file", src.name,
			"inserted", counters.Inserted, "skipped", counters.Skipped, "errors", counters.Errors)
	}

	if p.metrics != nil {
		p.metrics.RecordsIngested.Add(float64(summary.Inserted))
		p.metrics.RecordsSkipped.Add(float64(summary.Skipped))
		p.metrics.IngestionErrors.Add(float64(summary.Errors))
	}
	return summary, nil
}

// runFile loads one export and dispatches on its ingestion kind
func (p *IngestionPipeline) runFile(ctx context.Context, src sourceFile) (FileCounters, error) {
	counters := FileCounters{File: src.name}

	doc, err := p.loadFile(src.name)
	if err != nil {
		return counters, err
	}

	if src.kind == ingestSiteContent {
		p.ingestContentBlock(ctx, src, doc, &counters)
		return counters, nil
	}

	payload := repo.ExtractPayload(doc, src.arrayKey)
	records, ok := payload.([]interface{})
	if !ok {
		return counters, fmt.Errorf("no record array found in %s", src.name)
	}

	switch src.kind {
	case ingestTrips:
		p.ingestTripRecords(ctx, records, src.tripCategory, &counters)
	case ingestActivities:
		p.ingestActivityRecords(ctx, records, &counters)
	case ingestBlogs:
		p.ingestBlogRecords(ctx, records, &counters)
	case ingestDestinations:
		p.ingestDestinationRecords(ctx, records, &counters)
	case ingestUsers:
		p.ingestUserRecords(ctx, records, &counters)
	}
	return counters, nil
}

func (p *IngestionPipeline) loadFile(name string) (interface{}, error) {
	raw, err := os.ReadFile(filepath.Join(p.srcDir, name))
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	return doc, nil
}

// ingestTripRecords inserts trips, skipping by the (title, category) dedup
// key
func (p *IngestionPipeline) ingestTripRecords(ctx context.Context, records []interface{}, category string, counters *FileCounters) {
	for _, raw := range records {
		src, ok := raw.(map[string]interface{})
		if !ok {
			counters.Errors++
			continue
		}
		trip := mapTrip(src, category)

		exists, err := p.store.TripExists(ctx, trip.Title, trip.Category)
		if err != nil {
			p.recordError(counters, "trip", trip.Title, err)
			continue
		}
		if exists {
			counters.Skipped++
			continue
		}
		if err := p.store.InsertTrip(ctx, trip); err != nil {
			p.recordError(counters, "trip", trip.Title, err)
			continue
		}
		counters.Inserted++
	}
}

func (p *IngestionPipeline) ingestActivityRecords(ctx context.Context, records []interface{}, counters *FileCounters) {
	for _, raw := range records {
		src, ok := raw.(map[string]interface{})
		if !ok {
			counters.Errors++
			continue
		}
		activity := mapActivity(src)

		exists, err := p.store.ActivityExists(ctx, activity.Name)
		if err != nil {
			p.recordError(counters, "activity", activity.Name, err)
			continue
		}
		if exists {
			counters.Skipped++
			continue
		}
		if err := p.store.InsertActivity(ctx, activity); err != nil {
			p.recordError(counters, "activity", activity.Name, err)
			continue
		}
		counters.Inserted++
	}
}

func (p *IngestionPipeline) ingestBlogRecords(ctx context.Context, records []interface{}, counters *FileCounters) {
	for _, raw := range records {
		src, ok := raw.(map[string]interface{})
		if !ok {
			counters.Errors++
			continue
		}
		post := mapBlog(src)

		exists, err := p.store.BlogExists(ctx, post.Slug)
		if err != nil {
			p.recordError(counters, "blog", post.Slug, err)
			continue
		}
		if exists {
			counters.Skipped++
			continue
		}
		if err := p.store.InsertBlog(ctx, post); err != nil {
			p.recordError(counters, "blog", post.Slug, err)
			continue
		}
		counters.Inserted++
	}
}

func (p *IngestionPipeline) ingestDestinationRecords(ctx context.Context, records []interface{}, counters *FileCounters) {
	for _, raw := range records {
		src, ok := raw.(map[string]interface{})
		if !ok {
			counters.Errors++
			continue
		}
		dest := mapDestination(src)

		exists, err := p.store.DestinationExists(ctx, dest.Name)
		if err != nil {
			p.recordError(counters, "destination", dest.Name, err)
			continue
		}
		if exists {
			counters.Skipped++
			continue
		}
		if err := p.store.InsertDestination(ctx, dest); err != nil {
			p.recordError(counters, "destination", dest.Name, err)
			continue
		}
		counters.Inserted++
	}
}

// ingestContentBlock upserts a singleton site-content block. No
// existence-skip here: blocks are configuration, and every run bumps the
// version.
func (p *IngestionPipeline) ingestContentBlock(ctx context.Context, src sourceFile, doc interface{}, counters *FileCounters) {
	content, ok := doc.(map[string]interface{})
	if !ok {
		counters.Errors++
		return
	}

	block := &entity.SiteContentBlock{
		Type:    src.contentType,
		Content: content,
	}
	if err := p.store.UpsertSiteContent(ctx, block); err != nil {
		p.recordError(counters, "siteContent", src.contentType, err)
		return
	}
	counters.Inserted++
}

// ingestUserRecords bulk-inserts accounts whose credentials the source
// already hashed. Records whose email is already present are skipped
// before the bulk write.
func (p *IngestionPipeline) ingestUserRecords(ctx context.Context, records []interface{}, counters *FileCounters) {
	var pending []*entity.User
	for _, raw := range records {
		src, ok := raw.(map[string]interface{})
		if !ok {
			counters.Errors++
			continue
		}
		user := mapUser(src)
		if err := user.Validate(); err != nil {
			p.recordError(counters, "user", user.Email, err)
			continue
		}

		exists, err := p.store.UserExists(ctx, user.Email)
		if err != nil {
			p.recordError(counters, "user", user.Email, err)
			continue
		}
		if exists {
			counters.Skipped++
			continue
		}
		pending = append(pending, user)
	}

	if len(pending) == 0 {
		return
	}
	inserted, err := p.store.InsertUsers(ctx, pending)
	counters.Inserted += inserted
	if err != nil {
		counters.Errors += len(pending) - inserted
		p.log.Error("Bulk user insert incomplete", "inserted", inserted, "of", len(pending), "error", err)
	}
}

func (p *IngestionPipeline) recordError(counters *FileCounters, kind, key string, err error) {
	counters.Errors++
	p.log.Error("Record failed, continuing", "kind", kind, "key", key, "error", err)
}
