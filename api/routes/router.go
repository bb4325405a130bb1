package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopnex/api/controllers"
	"github.com/angelmondragon/shopnex/api/middleware"
	"github.com/angelmondragon/shopnex/internal/cart"
	"github.com/angelmondragon/shopnex/pkg/config"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/storage"
)

const eventsKeepAlive = 15 * time.Second

// Deps are the collaborators the router hands to controllers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    controllers.CartStore
	Catalog  controllers.ProductCatalog
	Pricing  cart.Pricing
	Storage  storage.Pinger
	Registry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, deps.Storage, logg))
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoriesList(deps.Catalog))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Store))
			r.Delete("/", controllers.CartClear(deps.Store))
			r.Get("/summary", controllers.CartSummary(deps.Store, deps.Pricing))
			r.Get("/events", controllers.CartEvents(deps.Store, logg, eventsKeepAlive))
			r.Post("/items", controllers.CartAddItem(deps.Store, deps.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Store, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Store, logg))
		})
	})

	return r
}
