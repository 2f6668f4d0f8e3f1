package controllers

import (
	"context"
	"net/http"

	"github.com/vnbcommerce/storefront-sync/api/responses"
	"github.com/vnbcommerce/storefront-sync/api/validators"
	"github.com/vnbcommerce/storefront-sync/internal/nav"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

type NavManager interface {
	State() nav.State
	NavigateTo(ctx context.Context, page string, params map[string]string) nav.State
	GoBack(ctx context.Context) nav.State
}

func NavState(manager NavManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nav manager unavailable"))
			return
		}
		responses.WriteSuccess(w, manager.State())
	}
}

func NavNavigate(manager NavManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nav manager unavailable"))
			return
		}

		var payload struct {
			Page   string            `json:"page" validate:"required"`
			Params map[string]string `json:"params"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, manager.NavigateTo(r.Context(), payload.Page, payload.Params))
	}
}

func NavBack(manager NavManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nav manager unavailable"))
			return
		}
		responses.WriteSuccess(w, manager.GoBack(r.Context()))
	}
}
