package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Store exposes the durable cart operations.
type Store interface {
	AddToCart(ctx context.Context, input AddToCartInput) error
	GetCartItems(ctx context.Context, customerID string) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, itemID uuid.UUID) error
}

// AddToCartInput carries one quantity delta against the customer's active
// cart. Negative quantities decrement; a result at or below zero deletes the
// row.
type AddToCartInput struct {
	CustomerID   string
	RestaurantID int64
	ProductID    int64
	Quantity     int
	Price        decimal.Decimal
	Notes        string
}

type store struct {
	tx      txRunner
	repo    *Repository
	metrics *metrics.OrderMetrics
}

// NewStore builds the durable cart store.
func NewStore(tx txRunner, repo *Repository, orderMetrics *metrics.OrderMetrics) (Store, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &store{tx: tx, repo: repo, metrics: orderMetrics}, nil
}

// AddToCart applies a quantity delta against the customer's active cart,
// finding or creating the cart inside a single transaction. Under postgres at
// read committed two overlapping calls can still both miss and insert; the
// newest cart wins every subsequent read and the cleanup job reaps the other,
// so no unique constraint is placed on customer_id (superseded cart rows
// coexist until reaped).
func (s *store) AddToCart(ctx context.Context, input AddToCartInput) error {
	if input.CustomerID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.RestaurantID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}
	if input.ProductID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindActiveCart(ctx, input.CustomerID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
			}
			cart, err = repo.CreateCart(ctx, &models.Cart{
				CustomerID:   input.CustomerID,
				RestaurantID: input.RestaurantID,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}

		// An empty cart left over from a restaurant switch gets retagged so
		// checkout attributes the order to the restaurant actually ordered
		// from.
		if cart.RestaurantID != input.RestaurantID {
			count, err := repo.CountItems(ctx, cart.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
			}
			if count == 0 {
				if err := repo.UpdateCartRestaurant(ctx, cart.ID, input.RestaurantID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retag cart restaurant")
				}
				cart.RestaurantID = input.RestaurantID
			}
		}

		item, err := repo.FindItem(ctx, cart.ID, input.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}

		if item != nil {
			newQuantity := item.Quantity + input.Quantity
			if newQuantity <= 0 {
				if _, err := repo.DeleteItem(ctx, item.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
				}
				return nil
			}
			if err := repo.UpdateItemQuantity(ctx, item.ID, newQuantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item quantity")
			}
			return nil
		}

		// Decrementing an item that is not in the cart is a no-op.
		if input.Quantity <= 0 {
			return nil
		}

		_, err = repo.CreateItem(ctx, &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Price:     input.Price,
			Notes:     input.Notes,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart item")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncCartMutation("add")
	return nil
}

// GetCartItems returns the active cart's items joined with products. A
// customer without a cart gets an empty slice, not an error.
func (s *store) GetCartItems(ctx context.Context, customerID string) ([]models.CartItem, error) {
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	cart, err := s.repo.FindActiveCart(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.CartItem{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return items, nil
}

// RemoveFromCart deletes the item with this id. An item that is already gone
// reports NotFound so callers can decide whether that matters to them.
func (s *store) RemoveFromCart(ctx context.Context, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item id required")
	}

	affected, err := s.repo.DeleteItem(ctx, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	s.metrics.IncCartMutation("remove")
	return nil
}
