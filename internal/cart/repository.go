package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
)

// Repository manages cart and cart item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindActiveCart returns the most-recently-created cart for the customer.
// Older cart rows for the same customer are never surfaced.
func (r *Repository) FindActiveCart(ctx context.Context, customerID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts a new cart row.
func (r *Repository) CreateCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindItem returns the cart item for the given product within a cart.
func (r *Repository) FindItem(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart item.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity overwrites the quantity of a cart item.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// CountItems reports how many items a cart holds.
func (r *Repository) CountItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error
	return count, err
}

// UpdateCartRestaurant overwrites the restaurant a cart is attributed to.
func (r *Repository) UpdateCartRestaurant(ctx context.Context, cartID uuid.UUID, restaurantID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("restaurant_id", restaurantID).Error
}

// DeleteItem removes the cart item with this id, reporting how many rows went.
func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// ListItems returns the items of a cart with their products attached.
func (r *Repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItemsByCart removes every item belonging to a cart.
func (r *Repository) DeleteItemsByCart(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

// DeleteCart removes the cart row itself.
func (r *Repository) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", cartID).
		Delete(&models.Cart{}).Error
}

// FindSupersededCarts returns carts older than cutoff that are no longer the
// newest cart for their customer. Items added against them are invisible to
// every read path, so they are safe to reap.
func (r *Repository) FindSupersededCarts(ctx context.Context, cutoff time.Time) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Where("EXISTS (SELECT 1 FROM carts newer WHERE newer.customer_id = carts.customer_id AND newer.created_at > carts.created_at)").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}
