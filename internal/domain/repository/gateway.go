package repository

import (
	"context"
)

// Source identifies which backend served a result
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// QueryOptions narrows a read. Filter and Sort are merged into the
// primary-store query; only Limit is honored on the flat-file path.
type QueryOptions struct {
	Filter map[string]interface{}
	Select []string
	Limit  int64
	Sort   map[string]int
}

// Result is a typed read result so callers can tell a degraded read from a
// healthy one
type Result struct {
	Data   interface{}
	Source Source
}

// SearchHit is one entry of a heterogeneous search result list. Type is the
// entity-kind discriminator so mixed lists render uniformly.
type SearchHit struct {
	Type string                 `json:"type"`
	Doc  map[string]interface{} `json:"doc"`
}

// DatabaseHealth reports the primary-store side of a health check
type DatabaseHealth struct {
	Connected bool   `json:"connected"`
	State     string `json:"state"`
}

// FallbackHealth reports the flat-file side of a health check
type FallbackHealth struct {
	Available bool   `json:"available"`
	Path      string `json:"path"`
}

// HealthStatus is the gateway health response
type HealthStatus struct {
	Database     DatabaseHealth `json:"database"`
	JSONFallback FallbackHealth `json:"jsonFallback"`
}

// DataGateway is the dual-backend data access surface. Every read routes to
// the primary store when it is ready and degrades to the flat-file path for
// the single call otherwise.
type DataGateway interface {
	Initialize(ctx context.Context) bool
	GetData(ctx context.Context, collection string, opts QueryOptions) (Result, error)
	SaveData(ctx context.Context, collection string, data interface{}) (Result, error)
	Search(ctx context.Context, query string, opts QueryOptions) (Result, error)
	SearchDatabase(ctx context.Context, query, entityType string) ([]SearchHit, error)
	GetByID(ctx context.Context, collection, id string) (Result, error)
	GetFeaturedItems(ctx context.Context, collection string, limit int64) (Result, error)
	GetByCategory(ctx context.Context, collection, category string, opts QueryOptions) (Result, error)
	HealthCheck(ctx context.Context) HealthStatus
}
