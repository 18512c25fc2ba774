package importer

import (
	"context"
	"errors"
	"testing"

	"catalog-backend/domain/product"
	objectmemory "catalog-backend/infrastructure/objectstore/memory"
	"catalog-backend/infrastructure/persistence/memory"
	appErrors "catalog-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testBucket = "import-test-data"
	testDate   = "2026-09-01"
)

type capturedEvent struct {
	DetailType string
	Detail     interface{}
}

// fakePublisher records published events.
type fakePublisher struct {
	events []capturedEvent
}

func (p *fakePublisher) Publish(ctx context.Context, detailType string, detail interface{}) error {
	p.events = append(p.events, capturedEvent{DetailType: detailType, Detail: detail})
	return nil
}

// fakeMetrics records the last import counters.
type fakeMetrics struct {
	date      string
	succeeded int
	failed    int
}

func (m *fakeMetrics) RecordImport(ctx context.Context, date string, succeeded, failed int) error {
	m.date = date
	m.succeeded = succeeded
	m.failed = failed
	return nil
}

// failingRepository rejects every write.
type failingRepository struct {
	memory.ProductRepository
}

func (r *failingRepository) Save(ctx context.Context, p *product.Product) error {
	return appErrors.NewStorageError("put product", errors.New("throttled"))
}

func putCSV(store *objectmemory.ObjectStore, date, content string) {
	store.Put(testBucket, date+"/items.csv", []byte(content))
}

func TestImportForDate_ImportsAllRows(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	store := objectmemory.NewObjectStore()
	events := &fakePublisher{}
	metrics := &fakeMetrics{}

	putCSV(store, testDate, "name,description,price\nA,d1,1.5\nB,d2,2\n")

	svc := NewService(repo, store, events, metrics, testBucket, 4, zap.NewNop())

	report, err := svc.ImportForDate(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, &Report{Parsed: 2, Succeeded: 2, Failed: 0}, report)

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	byName := make(map[string]*product.Product, len(products))
	for _, p := range products {
		_, err := uuid.Parse(p.ID)
		assert.NoError(t, err, "each row gets a fresh UUID")
		byName[p.Name] = p
	}

	require.Contains(t, byName, "A")
	require.Contains(t, byName, "B")
	assert.Equal(t, 1.5, byName["A"].Price)
	assert.Equal(t, "d1", byName["A"].Description)
	assert.Equal(t, 2.0, byName["B"].Price)
	assert.Equal(t, "d2", byName["B"].Description)

	// All rows of one run share a single batch timestamp.
	assert.Equal(t, byName["A"].CreatedAt, byName["B"].CreatedAt)
	assert.Equal(t, byName["A"].CreatedAt, byName["A"].UpdatedAt)

	// Outcome is published and recorded.
	require.Len(t, events.events, 1)
	assert.Equal(t, "catalog.import.completed", events.events[0].DetailType)
	assert.Equal(t, testDate, metrics.date)
	assert.Equal(t, 2, metrics.succeeded)
	assert.Equal(t, 0, metrics.failed)
}

func TestImportForDate_RejectsUnparseablePrice(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	store := objectmemory.NewObjectStore()

	putCSV(store, testDate, "name,description,price\nA,d1,1.5\nC,d3,abc\nB,d2,2\n")

	svc := NewService(repo, store, nil, nil, testBucket, 4, zap.NewNop())

	report, err := svc.ImportForDate(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, &Report{Parsed: 2, Succeeded: 2, Failed: 1}, report)

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEqual(t, "C", p.Name, "rejected row must not be stored")
	}
}

func TestImportForDate_MissingObject(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewProductRepository(), objectmemory.NewObjectStore(), nil, nil, testBucket, 4, zap.NewNop())

	_, err := svc.ImportForDate(ctx, testDate)
	require.Error(t, err)
	assert.True(t, appErrors.IsSourceNotFound(err))
}

func TestImportForDate_MissingColumn(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	store := objectmemory.NewObjectStore()

	putCSV(store, testDate, "name,price\nA,1.5\n")

	svc := NewService(repo, store, nil, nil, testBucket, 4, zap.NewNop())

	_, err := svc.ImportForDate(ctx, testDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestImportForDate_AggregatesWriteFailures(t *testing.T) {
	ctx := context.Background()
	store := objectmemory.NewObjectStore()
	metrics := &fakeMetrics{}

	putCSV(store, testDate, "name,description,price\nA,d1,1.5\nB,d2,2\n")

	svc := NewService(&failingRepository{}, store, nil, metrics, testBucket, 2, zap.NewNop())

	report, err := svc.ImportForDate(ctx, testDate)
	require.NoError(t, err, "per-row write failures are aggregated, not thrown")
	assert.Equal(t, &Report{Parsed: 2, Succeeded: 0, Failed: 2}, report)
	assert.Equal(t, 2, metrics.failed)
}
