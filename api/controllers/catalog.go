package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/danielcarreno/foodrush-backend/api/responses"
	"github.com/danielcarreno/foodrush-backend/internal/catalog"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

// RestaurantList serves the restaurant directory from the fixture.
func RestaurantList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Restaurants())
	}
}

// RestaurantDetail serves one restaurant with its menu.
func RestaurantDetail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(chi.URLParam(r, "restaurantId"), 10, 64)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid restaurant id"))
			return
		}

		restaurant, ok := catalog.RestaurantByID(id)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found"))
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

// RestaurantProducts serves the restaurant's available products from the
// store, not the fixture, so seeded data is what customers order against.
func RestaurantProducts(repo *catalog.ProductRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(chi.URLParam(r, "restaurantId"), 10, 64)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid restaurant id"))
			return
		}

		products, err := repo.ListByRestaurant(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products"))
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// CategoryList serves the menu categories.
func CategoryList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Categories())
	}
}

// PromotionList serves the current promotions.
func PromotionList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Promotions())
	}
}
