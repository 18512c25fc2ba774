package catalog

import (
	"context"
	"testing"

	"catalog-backend/domain/product"
	"catalog-backend/infrastructure/persistence/memory"
	appErrors "catalog-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }

func newTestService() *Service {
	return NewService(memory.NewProductRepository(), zap.NewNop())
}

func createData() *product.CreateProductData {
	return &product.CreateProductData{
		Name:        "Mechanical Keyboard",
		Category:    "peripherals",
		Price:       floatPtr(89.90),
		Quantity:    intPtr(4),
		InStock:     boolPtr(true),
		Description: strPtr("tenkeyless"),
		ImageURL:    strPtr("https://example.com/kb.png"),
		Tags:        []string{"keyboard", "mechanical"},
	}
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, createData())
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err, "id must be a canonical UUID")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	assert.Equal(t, "Mechanical Keyboard", created.Name)
	assert.Equal(t, "peripherals", created.Category)
	assert.Equal(t, 89.90, created.Price)
	assert.Equal(t, 4, created.Quantity)
	assert.True(t, created.InStock)
	assert.Equal(t, "tenkeyless", created.Description)
	assert.Equal(t, "https://example.com/kb.png", created.ImageURL)
	assert.Equal(t, []string{"keyboard", "mechanical"}, created.Tags)
}

func TestCreate_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, createData())
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreate_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	data := createData()
	data.Name = ""
	data.Price = floatPtr(-2)

	_, err := svc.Create(ctx, data)
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	appErr := appErrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, []string{"name is required", "price cannot be negative"}, appErr.Violations)
}

func TestGetByID_InvalidID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.GetByID(ctx, "not-a-uuid")
	assert.True(t, appErrors.IsValidation(err))
}

func TestGetByID_Missing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.GetByID(ctx, uuid.New().String())
	assert.True(t, appErrors.IsNotFound(err))
}

func TestList_ReturnsAllRecords(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, err := svc.Create(ctx, createData())
	require.NoError(t, err)
	second, err := svc.Create(ctx, createData())
	require.NoError(t, err)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	ids := []string{products[0].ID, products[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
}

func TestUpdate_PartialMutation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, createData())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &product.UpdateProductData{
		Price:       floatPtr(79.90),
		Description: strPtr("tenkeyless, hot-swappable"),
	})
	require.NoError(t, err)

	// Supplied fields take the new values.
	assert.Equal(t, 79.90, updated.Price)
	assert.Equal(t, "tenkeyless, hot-swappable", updated.Description)

	// id and createdAt never change; updatedAt is refreshed.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)

	// Absent fields keep their stored values.
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.Quantity, updated.Quantity)
	assert.Equal(t, created.InStock, updated.InStock)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Equal(t, created.Tags, updated.Tags)
}

func TestUpdate_EmptyPayloadRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, createData())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, &product.UpdateProductData{})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	// Also rejected when the target does not exist: validation runs first.
	_, err = svc.Update(ctx, uuid.New().String(), &product.UpdateProductData{})
	assert.True(t, appErrors.IsValidation(err))
}

func TestUpdate_MissingIDFailsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Update(ctx, uuid.New().String(), &product.UpdateProductData{
		Price: floatPtr(1),
	})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, createData())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, appErrors.IsNotFound(err))

	// Deleting again, or deleting an id that never existed, still succeeds.
	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.NoError(t, svc.Delete(ctx, uuid.New().String()))
}
