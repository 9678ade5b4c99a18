package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"travelgate-service/internal/domain/repository"
	"travelgate-service/internal/infrastructure/persistence"
	"travelgate-service/pkg/logger"
	"travelgate-service/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connection is the slice of the connection manager the gateway consults.
// Keeping it an interface lets tests substitute a fake that reports ready
// while its queries fail.
type Connection interface {
	Connect(ctx context.Context) bool
	IsReady() bool
	ConnectionState() persistence.ConnState
	Database() *mongo.Database
}

// searchSpec describes the regex search surface of one entity kind
type searchSpec struct {
	kind   string
	mongo  string
	fields []string
	cap    int64
}

// Per-kind search fields and result caps. Trips get the deepest cut of the
// result list; everything else is capped lower.
var searchSpecs = []searchSpec{
	{kind: KindTrip, mongo: "trips", fields: []string{"title", "destination", "description", "tags"}, cap: 20},
	{kind: KindActivity, mongo: "activities", fields: []string{"name", "location", "description"}, cap: 10},
	{kind: KindDestination, mongo: "destinations", fields: []string{"name", "country", "description"}, cap: 10},
	{kind: KindBlog, mongo: "blogs", fields: []string{"title", "summary", "tags"}, cap: 10},
}

// DataAccessGateway routes every read and write to the primary store when
// it is available and to the flat-file store otherwise. The mode flag is
// decided once at Initialize; on top of that, any error during a
// primary-store call degrades that single call to the flat-file path
// without changing the flag.
type DataAccessGateway struct {
	conn    Connection
	files   *JSONStore
	metrics *metrics.Metrics
	log     logger.Logger

	// Sticky process-level mode decided by Initialize. Not guarded: it is
	// written once before the gateway starts serving.
	useDatabase bool
}

// NewDataAccessGateway creates a gateway over both backends
func NewDataAccessGateway(conn Connection, files *JSONStore, m *metrics.Metrics, log logger.Logger) *DataAccessGateway {
	return &DataAccessGateway{
		conn:    conn,
		files:   files,
		metrics: m,
		log:     log,
	}
}

// Initialize connects to the primary store; the outcome becomes the sticky
// mode flag
func (g *DataAccessGateway) Initialize(ctx context.Context) bool {
	g.useDatabase = g.conn.Connect(ctx)
	if !g.useDatabase {
		g.log.Warn("Gateway starting in flat-file fallback mode", "dataDir", g.files.BasePath())
	}
	return g.useDatabase
}

// primaryReady reports whether a call may be dispatched to the primary
// store right now
func (g *DataAccessGateway) primaryReady() bool {
	return g.useDatabase && g.conn.IsReady()
}

// GetData reads a collection. Primary-store queries merge the collection's
// default visibility filter with the caller's filter, caller keys winning;
// the flat-file path honors only the limit.
func (g *DataAccessGateway) GetData(ctx context.Context, collection string, opts repository.QueryOptions) (repository.Result, error) {
	start := time.Now()
	defer func() {
		g.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	if g.primaryReady() {
		data, err := g.queryDatabase(ctx, collection, opts)
		if err == nil {
			g.metrics.QueriesServed.WithLabelValues(collection, string(repository.SourcePrimary)).Inc()
			return repository.Result{Data: data, Source: repository.SourcePrimary}, nil
		}
		// Call-scoped degradation: the mode flag stays as it is.
		g.log.Warn("Primary-store query failed, serving flat file for this call",
			"collection", collection, "error", err)
		g.metrics.FallbacksTotal.WithLabelValues(collection).Inc()
	}

	return g.getJSONData(collection, opts)
}

// getJSONData is the flat-file read path
func (g *DataAccessGateway) getJSONData(collection string, opts repository.QueryOptions) (repository.Result, error) {
	data, err := g.files.Read(collection, opts.Limit)
	if err != nil {
		return repository.Result{Source: repository.SourceFallback}, err
	}
	g.metrics.QueriesServed.WithLabelValues(collection, string(repository.SourceFallback)).Inc()
	return repository.Result{Data: data, Source: repository.SourceFallback}, nil
}

// queryDatabase runs the per-collection primary-store query
func (g *DataAccessGateway) queryDatabase(ctx context.Context, collection string, opts repository.QueryOptions) ([]map[string]interface{}, error) {
	spec, ok := LookupCollection(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	db := g.conn.Database()
	if db == nil {
		return nil, ErrPrimaryUnavailable
	}

	filter := buildFilter(spec, opts.Filter)
	findOpts := buildFindOptions(opts)

	cursor, err := db.Collection(spec.Mongo).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// buildFilter merges the caller's filter over the collection defaults.
// Caller keys win, so a caller can deliberately override a visibility
// default such as isActive; this permissiveness is intentional and relied
// on by admin listings.
func buildFilter(spec CollectionSpec, callerFilter map[string]interface{}) bson.M {
	filter := bson.M{}
	for k, v := range spec.DefaultFilter {
		filter[k] = v
	}
	if spec.TripCategory != "" {
		filter["category"] = spec.TripCategory
	}
	if spec.ContentType != "" {
		filter["type"] = spec.ContentType
	}
	for k, v := range callerFilter {
		filter[k] = v
	}
	return filter
}

// buildFindOptions translates QueryOptions for the mongo driver. Sort keys
// are applied in sorted order so the query is deterministic.
func buildFindOptions(opts repository.QueryOptions) *options.FindOptions {
	findOpts := options.Find()
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if len(opts.Sort) > 0 {
		keys := make([]string, 0, len(opts.Sort))
		for k := range opts.Sort {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sortDoc := bson.D{}
		for _, k := range keys {
			sortDoc = append(sortDoc, bson.E{Key: k, Value: opts.Sort[k]})
		}
		findOpts.SetSort(sortDoc)
	}
	if len(opts.Select) > 0 {
		projection := bson.M{}
		for _, field := range opts.Select {
			projection[field] = 1
		}
		findOpts.SetProjection(projection)
	}
	return findOpts
}

// SaveData writes to whichever backend the mode flag selects. The
// flat-file path is read-only: the write is logged, the input is echoed
// back, and ErrReadOnlyFallback tells the caller the data never landed.
func (g *DataAccessGateway) SaveData(ctx context.Context, collection string, data interface{}) (repository.Result, error) {
	if g.primaryReady() {
		saved, err := g.saveDatabaseData(ctx, collection, data)
		if err != nil {
			return repository.Result{Source: repository.SourcePrimary}, err
		}
		return repository.Result{Data: saved, Source: repository.SourcePrimary}, nil
	}
	return g.saveJSONData(collection, data)
}

// saveDatabaseData dispatches per collection: site-content types upsert by
// their singleton key, arrays bulk-insert, single documents insert
func (g *DataAccessGateway) saveDatabaseData(ctx context.Context, collection string, data interface{}) (interface{}, error) {
	spec, ok := LookupCollection(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	db := g.conn.Database()
	if db == nil {
		return nil, ErrPrimaryUnavailable
	}

	coll := db.Collection(spec.Mongo)
	now := time.Now()

	if spec.Kind == KindSiteContent {
		update := bson.M{
			"$set": bson.M{
				"content":   data,
				"isActive":  true,
				"updatedAt": now,
			},
			"$inc":         bson.M{"version": 1},
			"$setOnInsert": bson.M{"createdAt": now},
		}
		_, err := coll.UpdateOne(ctx, bson.M{"type": spec.ContentType}, update, options.Update().SetUpsert(true))
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	if docs, ok := data.([]interface{}); ok {
		result, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return nil, err
		}
		g.log.Info("Bulk insert", "collection", collection, "count", len(result.InsertedIDs))
		return data, nil
	}

	if _, err := coll.InsertOne(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// saveJSONData does not persist anything. The flat-file store supports
// reads only; a write that lands here is lost, and the error says so.
func (g *DataAccessGateway) saveJSONData(collection string, data interface{}) (repository.Result, error) {
	g.log.Warn("Write received in fallback mode, not persisted", "collection", collection)
	return repository.Result{Data: data, Source: repository.SourceFallback}, ErrReadOnlyFallback
}

// Search runs the primary full-text trip search ranked by relevance, or
// delegates to SearchDatabase when the caller filters by entity type. Any
// primary-store error degrades to the naive flat-file substring search.
func (g *DataAccessGateway) Search(ctx context.Context, query string, opts repository.QueryOptions) (repository.Result, error) {
	if g.primaryReady() {
		if t, ok := opts.Filter["type"].(string); ok && t != "" {
			hits, err := g.SearchDatabase(ctx, query, t)
			if err == nil {
				return repository.Result{Data: hits, Source: repository.SourcePrimary}, nil
			}
			g.log.Warn("Typed search failed, falling back", "query", query, "error", err)
		} else {
			hits, err := g.textSearchTrips(ctx, query, opts.Limit)
			if err == nil {
				return repository.Result{Data: hits, Source: repository.SourcePrimary}, nil
			}
			g.log.Warn("Text search failed, falling back", "query", query, "error", err)
		}
		g.metrics.FallbacksTotal.WithLabelValues("search").Inc()
	}

	limit := int(opts.Limit)
	hits := g.files.Search(query, limit)
	return repository.Result{Data: hits, Source: repository.SourceFallback}, nil
}

// textSearchTrips runs the $text index search over trips sorted by
// relevance score
func (g *DataAccessGateway) textSearchTrips(ctx context.Context, query string, limit int64) ([]repository.SearchHit, error) {
	db := g.conn.Database()
	if db == nil {
		return nil, ErrPrimaryUnavailable
	}

	if limit <= 0 {
		limit = searchSpecs[0].cap
	}
	findOpts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(limit)

	cursor, err := db.Collection("trips").Find(ctx,
		bson.M{"$text": bson.M{"$search": query}, "isActive": true}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return tagDocs(KindTrip, docs), nil
}

// SearchDatabase is the rich search mode: a case-insensitive regex OR
// across each entity kind's searchable fields, independently capped per
// kind, every hit tagged with its kind so heterogeneous lists render
// uniformly. entityType narrows the search to one kind; empty searches all.
func (g *DataAccessGateway) SearchDatabase(ctx context.Context, query, entityType string) ([]repository.SearchHit, error) {
	if !g.primaryReady() {
		return nil, ErrPrimaryUnavailable
	}
	db := g.conn.Database()
	if db == nil {
		return nil, ErrPrimaryUnavailable
	}

	var hits []repository.SearchHit
	for _, spec := range searchSpecs {
		if entityType != "" && spec.kind != entityType {
			continue
		}

		filter := buildSearchFilter(spec.fields, query)
		cursor, err := db.Collection(spec.mongo).Find(ctx, filter,
			options.Find().SetLimit(spec.cap))
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", spec.kind, err)
		}

		var docs []map[string]interface{}
		err = cursor.All(ctx, &docs)
		cursor.Close(ctx)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", spec.kind, err)
		}

		hits = append(hits, tagDocs(spec.kind, docs)...)
	}
	return hits, nil
}

// buildSearchFilter ORs a case-insensitive regex over the given fields
func buildSearchFilter(fields []string, query string) bson.M {
	clauses := make([]bson.M, 0, len(fields))
	regex := primitive.Regex{Pattern: query, Options: "i"}
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: regex})
	}
	return bson.M{"$or": clauses}
}

// tagDocs wraps raw documents with their entity-kind discriminator
func tagDocs(kind string, docs []map[string]interface{}) []repository.SearchHit {
	hits := make([]repository.SearchHit, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, repository.SearchHit{Type: kind, Doc: doc})
	}
	return hits
}

// idFilter builds the _id clause for a caller-supplied identifier. Insert
// paths leave ID empty, so the driver assigns an ObjectID; a hex id must
// be cast to match those documents, while records loaded with explicit
// string ids still match by the raw form.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": []interface{}{oid, id}}}
	}
	return bson.M{"_id": id}
}

// GetByID fetches a single record by identifier from either backend
func (g *DataAccessGateway) GetByID(ctx context.Context, collection, id string) (repository.Result, error) {
	if g.primaryReady() {
		spec, ok := LookupCollection(collection)
		if ok {
			doc, err := g.findPrimaryByID(ctx, spec, id)
			if err == nil {
				return repository.Result{Data: doc, Source: repository.SourcePrimary}, nil
			}
			g.log.Warn("Primary-store lookup failed, trying flat file", "collection", collection, "id", id, "error", err)
			g.metrics.FallbacksTotal.WithLabelValues(collection).Inc()
		}
	}

	doc, err := g.files.FindByID(collection, id)
	if err != nil {
		return repository.Result{Source: repository.SourceFallback}, err
	}
	return repository.Result{Data: doc, Source: repository.SourceFallback}, nil
}

func (g *DataAccessGateway) findPrimaryByID(ctx context.Context, spec CollectionSpec, id string) (map[string]interface{}, error) {
	db := g.conn.Database()
	if db == nil {
		return nil, ErrPrimaryUnavailable
	}
	var doc map[string]interface{}
	if err := db.Collection(spec.Mongo).FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetFeaturedItems returns the newest featured records of a collection
func (g *DataAccessGateway) GetFeaturedItems(ctx context.Context, collection string, limit int64) (repository.Result, error) {
	return g.GetData(ctx, collection, repository.QueryOptions{
		Filter: map[string]interface{}{"isFeatured": true},
		Limit:  limit,
		Sort:   map[string]int{"createdAt": -1},
	})
}

// GetByCategory narrows a collection read to one category value when the
// collection's entity kind admits one
func (g *DataAccessGateway) GetByCategory(ctx context.Context, collection, category string, opts repository.QueryOptions) (repository.Result, error) {
	spec, ok := LookupCollection(collection)
	if ok && (spec.Kind == KindTrip || spec.Kind == KindActivity) && category != "" {
		if opts.Filter == nil {
			opts.Filter = map[string]interface{}{}
		}
		opts.Filter["category"] = category
	}
	return g.GetData(ctx, collection, opts)
}

// HealthCheck reports both backends without side effects
func (g *DataAccessGateway) HealthCheck(ctx context.Context) repository.HealthStatus {
	return repository.HealthStatus{
		Database: repository.DatabaseHealth{
			Connected: g.conn.IsReady(),
			State:     string(g.conn.ConnectionState()),
		},
		JSONFallback: repository.FallbackHealth{
			Available: g.files.Available(),
			Path:      g.files.BasePath(),
		},
	}
}
