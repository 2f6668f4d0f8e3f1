package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/vnbcommerce/storefront-sync/pkg/config"
)

// CORS applies the storefront origin policy. Credentials stay allowed so the
// page layer's cookies survive cross-origin calls in development.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
