package handlers

import (
	"net/http"
	"strings"

	"catalog-backend/application/catalog"
	"catalog-backend/domain/product"
	"catalog-backend/pkg/common"
	appErrors "catalog-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog *catalog.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var data product.CreateProductData
	if err := common.ParseJSONBody(w, r, &data, maxBodyBytes); err != nil {
		common.RespondError(w, appErrors.NewValidationError(decodeViolation(err)))
		return
	}

	created, err := h.catalog.Create(r.Context(), &data)
	if err != nil {
		h.logError(r, "create product failed", err)
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, created)
}

// GetProduct handles GET /products/{productID}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	p, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		h.logError(r, "get product failed", err)
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, p)
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logError(r, "list products failed", err)
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, products)
}

// UpdateProduct handles PUT /products/{productID}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var data product.UpdateProductData
	if err := common.ParseJSONBody(w, r, &data, maxBodyBytes); err != nil {
		common.RespondError(w, appErrors.NewValidationError(decodeViolation(err)))
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, &data)
	if err != nil {
		h.logError(r, "update product failed", err)
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /products/{productID}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.logError(r, "delete product failed", err)
		common.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) logError(r *http.Request, msg string, err error) {
	h.logger.Warn(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

// decodeViolation turns a JSON decode failure into a violation message,
// surfacing the offending field for the strict allow-list policy.
func decodeViolation(err error) string {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return "unexpected field " + name
	}
	return "invalid request body: " + msg
}
