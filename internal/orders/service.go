package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/pkg/config"
	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	"github.com/danielcarreno/foodrush-backend/pkg/enums"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CheckoutInput carries the delivery details captured at checkout time.
type CheckoutInput struct {
	CustomerID      string
	DeliveryAddress string
	CustomerName    string
	CustomerPhone   string
}

// Service converts carts into orders and manages their lifecycle.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error)
	ListOrders(ctx context.Context, customerID string) ([]models.Order, error)
	OrderDetails(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOpenOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	tx       txRunner
	repo     *Repository
	cartRepo *cart.Repository
	checkout config.CheckoutConfig
	metrics  *metrics.OrderMetrics
}

// NewService builds the order service.
func NewService(tx txRunner, repo *Repository, cartRepo *cart.Repository, checkout config.CheckoutConfig, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		cartRepo: cartRepo,
		checkout: checkout,
		metrics:  orderMetrics,
	}, nil
}

// Checkout snapshots the customer's active cart into an order and empties
// the cart, all in one transaction. A failure anywhere leaves the cart
// untouched.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if input.CustomerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.repo.WithTx(tx)

		activeCart, err := cartRepo.FindActiveCart(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no active cart to check out")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading active cart")
		}

		items, err := cartRepo.ListItems(ctx, activeCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart items")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.LineTotal())
		}
		deliveryFee := s.checkout.DeliveryFeeAmount()
		serviceFee := s.checkout.ServiceFeeAmount()

		created, err := orderRepo.CreateOrder(ctx, &models.Order{
			CustomerID:      input.CustomerID,
			RestaurantID:    activeCart.RestaurantID,
			Status:          enums.OrderStatusPreparing,
			TotalAmount:     subtotal.Add(deliveryFee).Add(serviceFee),
			DeliveryFee:     deliveryFee,
			ServiceFee:      serviceFee,
			DeliveryAddress: input.DeliveryAddress,
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   created.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Notes:     item.Notes,
			})
		}
		if err := orderRepo.CreateItems(ctx, orderItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}

		if err := cartRepo.DeleteItemsByCart(ctx, activeCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart items")
		}
		if err := cartRepo.DeleteCart(ctx, activeCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting cart")
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncOrderCreated(order.TotalAmount.InexactFloat64())
	}
	return s.repo.FindByID(ctx, order.ID)
}

// ListOrders returns the customer's order history, newest first.
func (s *service) ListOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	list, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	if list == nil {
		list = []models.Order{}
	}
	return list, nil
}

// OrderDetails loads one order with its items.
func (s *service) OrderDetails(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

// ListOpenOrders returns every non-terminal order, for the vendor view.
func (s *service) ListOpenOrders(ctx context.Context) ([]models.Order, error) {
	list, err := s.repo.ListByStatus(ctx, []enums.OrderStatus{
		enums.OrderStatusPreparing,
		enums.OrderStatusReady,
		enums.OrderStatusDelivering,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing open orders")
	}
	if list == nil {
		list = []models.Order{}
	}
	return list, nil
}

// UpdateStatus moves an order to the requested status, rejecting anything
// the lifecycle does not allow from the order's current state.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	target, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
		}

		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
		}

		if _, err := repo.UpdateStatus(ctx, orderID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, orderID)
}
