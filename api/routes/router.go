package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vnbcommerce/storefront-sync/api/controllers"
	"github.com/vnbcommerce/storefront-sync/api/middleware"
	"github.com/vnbcommerce/storefront-sync/internal/replica"
	"github.com/vnbcommerce/storefront-sync/pkg/config"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	replicaP replica.Pinger,
	engine controllers.CartEngine,
	navManager controllers.NavManager,
	sessions controllers.SessionService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, replicaP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.CartState(engine, logg))
		r.Post("/refresh", controllers.CartRefresh(engine, logg))
		r.Post("/items", controllers.CartAddItem(engine, logg))
		r.Patch("/items/{itemID}", controllers.CartUpdateItem(engine, logg))
		r.Delete("/items/{itemID}", controllers.CartRemoveItem(engine, logg))
		r.Post("/clear", controllers.CartClear(engine, logg))
	})

	r.Route("/api/v1/navigation", func(r chi.Router) {
		r.Get("/", controllers.NavState(navManager, logg))
		r.Post("/navigate", controllers.NavNavigate(navManager, logg))
		r.Post("/back", controllers.NavBack(navManager, logg))
	})

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/me", controllers.SessionMe(sessions, logg))
		r.Post("/login", controllers.SessionLogin(sessions, logg))
		r.Post("/logout", controllers.SessionLogout(sessions, logg))
	})

	return r
}
