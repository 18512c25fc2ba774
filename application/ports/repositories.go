// Package ports defines the interfaces the application services depend on.
// Infrastructure adapters implement them; tests substitute in-memory fakes.
package ports

import (
	"context"
	"io"

	"catalog-backend/domain/product"
)

// ProductRepository is the key-value storage boundary for product records.
type ProductRepository interface {
	// Save persists the full record, overwriting any existing item.
	Save(ctx context.Context, p *product.Product) error

	// FindByID fetches a record by exact key. Absent records surface as a
	// not-found error.
	FindByID(ctx context.Context, id string) (*product.Product, error)

	// FindAll returns every record, unordered. Full scan; the catalog is
	// assumed small.
	FindAll(ctx context.Context) ([]*product.Product, error)

	// Update applies a field-additive mutation: every entry in fields is
	// set, updatedAt is always refreshed, id and createdAt are never
	// touched. Updating a missing key fails with a not-found error.
	// Returns the full post-mutation record.
	Update(ctx context.Context, id string, fields map[string]interface{}, updatedAt string) (*product.Product, error)

	// Delete removes the record if present. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, id string) error
}

// ObjectStore is the streamed-read boundary for import sources.
// Object absence surfaces as a source-not-found error.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// EventPublisher emits application events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, detail interface{}) error
}

// MetricsRecorder emits operational metrics for import runs.
type MetricsRecorder interface {
	RecordImport(ctx context.Context, date string, succeeded, failed int) error
}
