package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/shopnex/api/responses"
	"github.com/angelmondragon/shopnex/api/validators"
	"github.com/angelmondragon/shopnex/internal/catalog"
	pkgerrors "github.com/angelmondragon/shopnex/pkg/errors"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/pagination"
)

const relatedProductsLimit = 4

type productPage struct {
	Products   []catalog.Product `json:"products"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// ProductsList lists the catalog in file order, optionally filtered by
// ?category= and ?featured=, paged with ?limit= and ?cursor=.
func ProductsList(products ProductCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, filterFeatured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var list []catalog.Product
		if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
			list = products.ByCategory(category)
		} else {
			list = products.List()
		}

		if filterFeatured {
			filtered := make([]catalog.Product, 0, len(list))
			for _, p := range list {
				if p.Featured == featured {
					filtered = append(filtered, p)
				}
			}
			list = filtered
		}

		page, next, err := pagination.Slice(list, pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		responses.WriteSuccess(w, productPage{Products: page, NextCursor: next})
	}
}

type productDetailResponse struct {
	Product catalog.Product   `json:"product"`
	Related []catalog.Product `json:"related"`
}

// ProductDetail returns one product plus others from its category.
func ProductDetail(products ProductCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := products.Get(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, productDetailResponse{
			Product: product,
			Related: products.Related(id, relatedProductsLimit),
		})
	}
}

func CategoriesList(products ProductCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, products.Categories())
	}
}
