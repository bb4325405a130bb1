package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopnex/api/responses"
	"github.com/angelmondragon/shopnex/api/validators"
	"github.com/angelmondragon/shopnex/internal/cart"
	pkgerrors "github.com/angelmondragon/shopnex/pkg/errors"
	"github.com/angelmondragon/shopnex/pkg/logger"
)

// maxAddQuantity caps units added by one request.
const maxAddQuantity = 99

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"gt=0"`
	Quantity  int `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartFetch returns the lines with their aggregates.
func CartFetch(store CartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem adds quantity units (default one) of a catalog product, one
// AddToCart per unit like the product page's quantity selector. The line
// snapshots the catalog record as it is when first added.
func CartAddItem(store CartStore, products ProductCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := products.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		if !product.InStock {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product is out of stock").
				WithDetails(map[string]any{"product_id": product.ID}))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, product.ID)
		}
		units := payload.Quantity
		if units == 0 {
			units = 1
		}
		var snap cart.Snapshot
		for i := 0; i < min(units, maxAddQuantity); i++ {
			snap = store.AddToCart(ctx, product)
		}
		responses.WriteSuccess(w, snap)
	}
}

// CartUpdateItem sets an absolute quantity; zero or less removes the line.
func CartUpdateItem(store CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}
		responses.WriteSuccess(w, store.UpdateQuantity(ctx, id, *payload.Quantity))
	}
}

// CartRemoveItem removes a line; unknown ids succeed unchanged.
func CartRemoveItem(store CartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}
		responses.WriteSuccess(w, store.RemoveFromCart(ctx, id))
	}
}

func CartClear(store CartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.ClearCart(r.Context()))
	}
}

// CartSummary prices the cart with shipping and tax.
func CartSummary(store CartStore, pricing cart.Pricing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Summary(pricing))
	}
}
