package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vnbcommerce/storefront-sync/api/responses"
	"github.com/vnbcommerce/storefront-sync/api/validators"
	cartsvc "github.com/vnbcommerce/storefront-sync/internal/cart"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

// CartEngine is the slice of the reconciliation engine the HTTP layer needs.
// Mutations never fail; the engine absorbs gateway outages internally.
type CartEngine interface {
	Snapshot() *cartsvc.Snapshot
	Loading() bool
	Refresh(ctx context.Context) *cartsvc.Snapshot
	AddItem(ctx context.Context, productID int64, quantity int, size, color string) *cartsvc.Snapshot
	UpdateItem(ctx context.Context, itemID int64, quantity int) *cartsvc.Snapshot
	RemoveItem(ctx context.Context, itemID int64) *cartsvc.Snapshot
	Clear(ctx context.Context) *cartsvc.Snapshot
}

type cartState struct {
	Cart    *cartsvc.Snapshot `json:"cart"`
	Loading bool              `json:"loading"`
}

func CartState(engine CartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable"))
			return
		}
		responses.WriteSuccess(w, cartState{Cart: engine.Snapshot(), Loading: engine.Loading()})
	}
}

func CartRefresh(engine CartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable"))
			return
		}
		snap := engine.Refresh(r.Context())
		responses.WriteSuccess(w, cartState{Cart: snap, Loading: engine.Loading()})
	}
}

func CartAddItem(engine CartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable"))
			return
		}

		var payload struct {
			ProductID int64  `json:"product_id" validate:"required,gt=0"`
			Quantity  int    `json:"quantity" validate:"required,gt=0"`
			Size      string `json:"size"`
			Color     string `json:"color"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap := engine.AddItem(r.Context(), payload.ProductID, payload.Quantity, payload.Size, payload.Color)
		responses.WriteSuccess(w, cartState{Cart: snap, Loading: engine.Loading()})
	}
}

func CartUpdateItem(engine CartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable"))
			return
		}

		itemID, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Quantity int `json:"quantity"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Zero and negative quantities remove the line, same as the gateway.
		snap := engine.UpdateItem(r.Context(), itemID, payload.Quantity)
		responses.WriteSuccess(w, cartState{Cart: snap, Loading: engine.Loading()})
	}
}

func CartRemoveItem(engine CartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable"))
			return
		}

		itemID, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap := engine.RemoveItem(r.Context(), itemID)
		responses.WriteSuccess(w, cartState{Cart: snap, Loading: engine.Loading()})
	}
}

func CartClear(engine CartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable"))
			return
		}

		snap := engine.Clear(r.Context())
		responses.WriteSuccess(w, cartState{Cart: snap, Loading: engine.Loading()})
	}
}

func itemIDFromURL(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "itemID")
	itemID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || itemID == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id").
			WithDetails(map[string]any{"item_id": raw})
	}
	return itemID, nil
}
