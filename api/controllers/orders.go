package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/danielcarreno/foodrush-backend/api/middleware"
	"github.com/danielcarreno/foodrush-backend/api/responses"
	"github.com/danielcarreno/foodrush-backend/api/validators"
	"github.com/danielcarreno/foodrush-backend/internal/orders"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,max=500"`
	CustomerName    string `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=50"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout turns the active cart into an order.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Checkout(ctx, orders.CheckoutInput{
			CustomerID:      middleware.CustomerID(ctx),
			DeliveryAddress: body.DeliveryAddress,
			CustomerName:    body.CustomerName,
			CustomerPhone:   body.CustomerPhone,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithOrderID(ctx, order.ID.String())
		logg.Info(ctx, "order placed")
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderList returns the customer's order history.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.ListOrders(ctx, middleware.CustomerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrderDetail returns one order with its items.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id"))
			return
		}

		order, err := svc.OrderDetails(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// VendorOpenOrders lists every in-flight order for the vendor dashboard.
func VendorOpenOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.ListOpenOrders(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// VendorUpdateOrderStatus moves an order through its lifecycle.
func VendorUpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id"))
			return
		}

		var body updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(ctx, orderID, body.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
