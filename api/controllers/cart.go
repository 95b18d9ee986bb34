package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/api/middleware"
	"github.com/danielcarreno/foodrush-backend/api/responses"
	"github.com/danielcarreno/foodrush-backend/api/validators"
	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/internal/catalog"
	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required"`
	Notes     string `json:"notes" validate:"max=500"`
}

type cartResponse struct {
	Items     []models.CartItem `json:"items"`
	Subtotal  string            `json:"subtotal"`
	ItemCount int               `json:"item_count"`
}

func buildCartResponse(session *cart.Session) cartResponse {
	items := session.Items()
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return cartResponse{
		Items:     items,
		Subtotal:  session.Total().StringFixed(2),
		ItemCount: count,
	}
}

// CartFetch returns the customer's current cart.
func CartFetch(sessions *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := sessions.Session(middleware.CustomerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := session.Load(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, buildCartResponse(session))
	}
}

// CartAddItem applies a quantity delta for one product. Positive quantities
// add, negative remove; a line that reaches zero disappears.
func CartAddItem(sessions *cart.Manager, products *catalog.ProductRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := products.FindByID(ctx, body.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product"))
			return
		}

		session, err := sessions.Session(middleware.CustomerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := session.AddItem(ctx, product, body.Quantity, body.Notes); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, buildCartResponse(session))
	}
}

// CartRemoveItem deletes a single cart line.
func CartRemoveItem(sessions *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart item id"))
			return
		}

		session, err := sessions.Session(middleware.CustomerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := session.RemoveItem(ctx, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, buildCartResponse(session))
	}
}

// CartClear empties the cart.
func CartClear(sessions *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := sessions.Session(middleware.CustomerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := session.Load(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := session.ClearCart(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart"))
			return
		}
		responses.WriteSuccess(w, buildCartResponse(session))
	}
}
