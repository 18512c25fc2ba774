package rest

import (
	"net/http"

	"catalog-backend/application/catalog"
	"catalog-backend/interfaces/http/rest/handlers"
	"catalog-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	catalog    *catalog.Service
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance.
func NewRouter(catalog *catalog.Service, logger *zap.Logger, enableCORS bool) *Router {
	return &Router{
		catalog:    catalog,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Route("/products", func(r chi.Router) {
		productHandler := handlers.NewProductHandler(rt.catalog, rt.logger)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/", productHandler.ListProducts)
		r.Get("/{productID}", productHandler.GetProduct)
		r.Put("/{productID}", productHandler.UpdateProduct)
		r.Delete("/{productID}", productHandler.DeleteProduct)
	})

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
