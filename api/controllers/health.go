package controllers

import (
	"net/http"

	"github.com/vnbcommerce/storefront-sync/api/responses"
	"github.com/vnbcommerce/storefront-sync/internal/replica"
	"github.com/vnbcommerce/storefront-sync/pkg/config"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

const envHeader = "X-Storefront-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady fails when the replica backend is unreachable. The gateway is
// deliberately not probed: the whole point of the engine is to stay useful
// while the gateway is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, replicaP replica.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if replicaP != nil {
			if err := replicaP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeReplica, err, "replica not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
