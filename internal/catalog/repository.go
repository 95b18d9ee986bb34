package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
)

// ProductRepository reads the seeded products table.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository binds the repository to the provided DB handle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	if tx == nil {
		return r
	}
	return &ProductRepository{db: tx}
}

// FindByID returns the product with this id.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByRestaurant returns the available products for a restaurant.
func (r *ProductRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND available = ?", restaurantID, true).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of seeded products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}
