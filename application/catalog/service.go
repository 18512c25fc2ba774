// Package catalog implements the product catalog service: create, read,
// list, update and delete over the shared product table.
package catalog

import (
	"context"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	appErrors "catalog-backend/pkg/errors"
	"catalog-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service dispatches catalog operations. Each operation is stateless and
// performs exactly one storage call.
type Service struct {
	repo      ports.ProductRepository
	validator *product.Validator
	logger    *zap.Logger
}

// NewService creates a catalog service backed by the given repository.
func NewService(repo ports.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: product.NewValidator(),
		logger:    logger,
	}
}

// Create validates the payload, assigns a fresh id and timestamps, and
// persists the full record.
func (s *Service) Create(ctx context.Context, data *product.CreateProductData) (*product.Product, error) {
	if violations := s.validator.ValidateCreate(data); len(violations) > 0 {
		return nil, appErrors.NewValidationError(violations...)
	}

	now := utils.NowRFC3339()
	p := &product.Product{
		ID:        uuid.New().String(),
		Name:      data.Name,
		Category:  data.Category,
		Price:     *data.Price,
		Quantity:  *data.Quantity,
		InStock:   *data.InStock,
		Tags:      data.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if data.Description != nil {
		p.Description = *data.Description
	}
	if data.ImageURL != nil {
		p.ImageURL = *data.ImageURL
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("productID", p.ID),
		zap.String("category", p.Category),
	)
	return p, nil
}

// GetByID fetches a single record by its identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*product.Product, error) {
	if violations := s.validator.ValidateID(id); len(violations) > 0 {
		return nil, appErrors.NewValidationError(violations...)
	}
	return s.repo.FindByID(ctx, id)
}

// List returns all records, unordered and unfiltered.
func (s *Service) List(ctx context.Context) ([]*product.Product, error) {
	return s.repo.FindAll(ctx)
}

// Update applies a partial update. Every present field must satisfy its
// create-shape rule; absent fields keep their stored values. The mutation
// always refreshes updatedAt and never touches id or createdAt. Updating
// a missing id fails with not found.
func (s *Service) Update(ctx context.Context, id string, data *product.UpdateProductData) (*product.Product, error) {
	if violations := s.validator.ValidateID(id); len(violations) > 0 {
		return nil, appErrors.NewValidationError(violations...)
	}
	if violations := s.validator.ValidateUpdate(data); len(violations) > 0 {
		return nil, appErrors.NewValidationError(violations...)
	}

	updated, err := s.repo.Update(ctx, id, data.Fields(), utils.NowRFC3339())
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.String("productID", id))
	return updated, nil
}

// Delete removes a record. Deleting an absent id succeeds; the operation
// is idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if violations := s.validator.ValidateID(id); len(violations) > 0 {
		return appErrors.NewValidationError(violations...)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("productID", id))
	return nil
}
