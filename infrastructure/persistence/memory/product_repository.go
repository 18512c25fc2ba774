// Package memory provides an in-memory product repository with the same
// semantics as the DynamoDB implementation. Used by tests and local runs.
package memory

import (
	"context"
	"sync"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	appErrors "catalog-backend/pkg/errors"
)

// ProductRepository is a mutex-guarded map keyed by product id.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

// NewProductRepository creates an empty in-memory repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*product.Product),
	}
}

// Save persists the full record, overwriting any existing item.
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = clone(p)
	return nil
}

// FindByID fetches a record by exact key.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, appErrors.NewNotFoundError("Product")
	}
	return clone(p), nil
}

// FindAll returns every record, unordered.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*product.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, clone(p))
	}
	return products, nil
}

// Update applies the supplied fields plus updatedAt. Updating a missing
// key fails with not found, matching the conditional DynamoDB update.
func (r *ProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}, updatedAt string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, appErrors.NewNotFoundError("Product")
	}

	updated := clone(p)
	for attr, value := range fields {
		applyField(updated, attr, value)
	}
	updated.UpdatedAt = updatedAt

	r.products[id] = updated
	return clone(updated), nil
}

// Delete removes the record if present; absent keys are not an error.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func applyField(p *product.Product, attr string, value interface{}) {
	switch attr {
	case "name":
		p.Name = value.(string)
	case "category":
		p.Category = value.(string)
	case "price":
		p.Price = value.(float64)
	case "quantity":
		p.Quantity = value.(int)
	case "inStock":
		p.InStock = value.(bool)
	case "description":
		p.Description = value.(string)
	case "imageUrl":
		p.ImageURL = value.(string)
	case "tags":
		p.Tags = value.([]string)
	}
}

func clone(p *product.Product) *product.Product {
	copied := *p
	if p.Tags != nil {
		copied.Tags = append([]string(nil), p.Tags...)
	}
	return &copied
}
