package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"travelgate-service/internal/domain/repository"
	"travelgate-service/pkg/cache"
	"travelgate-service/pkg/logger"
	"travelgate-service/pkg/metrics"
)

// Collections the naive flat-file search scans. Intentionally narrower
// than the primary-store search surface.
var jsonSearchCollections = []string{"hot-locations", "upcoming-trips", "weekend-trips"}

// Fields the flat-file search matches against
var jsonSearchFields = []string{"title", "name", "destination", "location", "description"}

// JSONStore is the degraded flat-file backend. It supports reads only;
// parsed files are memoized in a TTL cache so repeated requests do not
// re-parse.
type JSONStore struct {
	baseDir string
	cache   *cache.TTLCache
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewJSONStore creates a flat-file store rooted at baseDir
func NewJSONStore(baseDir string, c *cache.TTLCache, m *metrics.Metrics, log logger.Logger) *JSONStore {
	return &JSONStore{
		baseDir: baseDir,
		cache:   c,
		metrics: m,
		log:     log,
	}
}

// BasePath returns the configured data directory
func (s *JSONStore) BasePath() string {
	return s.baseDir
}

// Available reports whether the data directory exists
func (s *JSONStore) Available() bool {
	info, err := os.Stat(s.baseDir)
	return err == nil && info.IsDir()
}

// Read resolves collection to its file, extracts the payload, and applies
// limit by truncation. Limit is the only query option the flat-file path
// honors; filter, select and sort are primary-store features.
func (s *JSONStore) Read(collection string, limit int64) (interface{}, error) {
	spec, ok := LookupCollection(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	doc, err := s.loadFile(spec.FileName)
	if err != nil {
		return nil, err
	}

	payload := ExtractPayload(doc, spec.ArrayKey)
	if arr, ok := payload.([]interface{}); ok && limit > 0 && int64(len(arr)) > limit {
		payload = arr[:limit]
	}
	return payload, nil
}

// FindByID scans an array-shaped collection for a record whose id or _id
// field equals id
func (s *JSONStore) FindByID(collection, id string) (map[string]interface{}, error) {
	payload, err := s.Read(collection, 0)
	if err != nil {
		return nil, err
	}
	arr, ok := payload.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array collection", ErrNotFound, collection)
	}
	for _, item := range arr {
		doc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if doc["id"] == id || doc["_id"] == id {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

// Search runs a case-insensitive substring match over the fixed fallback
// collections. Results are tagged with their entity kind so the shape
// matches the primary-store search.
func (s *JSONStore) Search(query string, limit int) []repository.SearchHit {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var hits []repository.SearchHit
	for _, collection := range jsonSearchCollections {
		spec, _ := LookupCollection(collection)
		payload, err := s.Read(collection, 0)
		if err != nil {
			s.log.Debug("Fallback search skipping collection", "collection", collection, "error", err)
			continue
		}
		arr, ok := payload.([]interface{})
		if !ok {
			continue
		}
		for _, item := range arr {
			doc, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if matchesSubstring(doc, needle) {
				hits = append(hits, repository.SearchHit{Type: spec.Kind, Doc: doc})
				if limit > 0 && len(hits) >= limit {
					return hits
				}
			}
		}
	}
	return hits
}

func matchesSubstring(doc map[string]interface{}, needle string) bool {
	for _, field := range jsonSearchFields {
		if v, ok := doc[field].(string); ok {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

// loadFile parses a JSON file under the data directory, memoizing the
// result
func (s *JSONStore) loadFile(name string) (interface{}, error) {
	if cached, ok := s.cache.Get(name); ok {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return cached, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	raw, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	s.cache.Set(name, doc)
	return doc, nil
}

// ExtractPayload locates the main payload of a parsed export document. A
// known arrayKey wins; otherwise, if the document is an object, the first
// array-valued property is taken, scanning keys in sorted order so the
// choice is deterministic. Legacy files with several array properties are
// ambiguous either way. Anything else passes through unchanged.
func ExtractPayload(doc interface{}, arrayKey string) interface{} {
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return doc
	}

	if arrayKey != "" {
		if arr, ok := obj[arrayKey].([]interface{}); ok {
			return arr
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if arr, ok := obj[k].([]interface{}); ok {
			return arr
		}
	}
	return doc
}
